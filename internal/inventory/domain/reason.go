package domain

import (
	"fmt"
	"strings"
)

// TransactionKind classifies a log entry.
type TransactionKind string

const (
	TransactionAdjustment     TransactionKind = "ADJUSTMENT"
	TransactionTransfer       TransactionKind = "TRANSFER"
	TransactionReconciliation TransactionKind = "RECONCILIATION"
)

// ReasonCode is the recognized cause of an adjustment.
type ReasonCode string

const (
	ReasonPurchaseReceipt ReasonCode = "PURCHASE_RECEIPT"
	ReasonOrderFulfilment ReasonCode = "ORDER_FULFILLMENT"
	ReasonProduction      ReasonCode = "PRODUCTION"
	ReasonConsumption     ReasonCode = "CONSUMPTION"
	ReasonCustomerReturn  ReasonCode = "CUSTOMER_RETURN"
	ReasonDamage          ReasonCode = "DAMAGE"
	ReasonLoss            ReasonCode = "LOSS"
	ReasonCorrection      ReasonCode = "CORRECTION"
	ReasonPhysicalCount   ReasonCode = "PHYSICAL_COUNT"
)

// Valid reports whether c is a recognized adjustment reason.
func (c ReasonCode) Valid() bool {
	switch c {
	case ReasonPurchaseReceipt, ReasonOrderFulfilment, ReasonProduction, ReasonConsumption,
		ReasonCustomerReturn, ReasonDamage, ReasonLoss, ReasonCorrection, ReasonPhysicalCount:
		return true
	}
	return false
}

// ParseReasonCode normalizes and validates a reason code.
func ParseReasonCode(s string) (ReasonCode, error) {
	c := ReasonCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", Validation(fmt.Sprintf("unrecognized adjustment reason %q", s), map[string]string{"reason_code": s})
	}
	return c, nil
}

// ReferenceKindCount marks log entries produced by a physical count.
const ReferenceKindCount = "count"
