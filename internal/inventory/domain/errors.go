package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Code is a machine-readable ledger error code.
type Code string

const (
	CodeUnknown                Code = "UNKNOWN"
	CodeValidation             Code = "VALIDATION_FAILED"
	CodeEntityNotFound         Code = "ENTITY_NOT_FOUND"
	CodeInsufficientInventory  Code = "INSUFFICIENT_INVENTORY"
	CodeLocationNotFound       Code = "LOCATION_NOT_FOUND"
	CodeConcurrentModification Code = "CONCURRENT_MODIFICATION"
	CodeInternal               Code = "INTERNAL"
	CodeRecordExists           Code = "RECORD_EXISTS"
	CodeNonzeroStock           Code = "NONZERO_STOCK"
	CodeDuplicateReference     Code = "DUPLICATE_REFERENCE"
)

// Error is the ledger's structured error. Metadata carries the details a
// caller needs to act on the failure (item, requested and available quantity).
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure may succeed on a fresh attempt.
func (e *Error) Retryable() bool {
	return e.Code == CodeConcurrentModification
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a ledger error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}

// Validation reports malformed input rejected before any record is loaded.
func Validation(message string, metadata map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Metadata: metadata}
}

// ItemNotFound reports that the owning module does not know the item.
func ItemNotFound(item ItemRef) *Error {
	return &Error{
		Code:     CodeEntityNotFound,
		Message:  fmt.Sprintf("item %s not found", item),
		Metadata: map[string]string{"item_kind": string(item.Kind), "item_id": item.ID},
	}
}

// DuplicateReference reports a movement whose external reference was
// already applied to the item.
func DuplicateReference(item ItemRef, referenceKind, referenceID string) *Error {
	return &Error{
		Code:    CodeDuplicateReference,
		Message: fmt.Sprintf("reference %s/%s already applied to %s", referenceKind, referenceID, item),
		Metadata: map[string]string{
			"item_kind":      string(item.Kind),
			"item_id":        item.ID,
			"reference_kind": referenceKind,
			"reference_id":   referenceID,
		},
	}
}

// Insufficient reports a change that would drive quantity below zero.
func Insufficient(key RecordKey, requested, available decimal.Decimal) *Error {
	md := key.metadata()
	md["requested"] = requested.String()
	md["available"] = available.String()
	return &Error{
		Code:     CodeInsufficientInventory,
		Message:  fmt.Sprintf("insufficient inventory for %s: requested %s, available %s", key, requested, available),
		Metadata: md,
	}
}

// LocationNotFound reports an unknown storage location.
func LocationNotFound(location string) *Error {
	return &Error{
		Code:     CodeLocationNotFound,
		Message:  fmt.Sprintf("storage location %q not found", location),
		Metadata: map[string]string{"location": location},
	}
}

// ConcurrentModification reports a lost optimistic version check.
func ConcurrentModification(key RecordKey, expectedVersion int64) *Error {
	md := key.metadata()
	md["expected_version"] = fmt.Sprintf("%d", expectedVersion)
	return &Error{
		Code:     CodeConcurrentModification,
		Message:  fmt.Sprintf("inventory record %s was modified concurrently", key),
		Metadata: md,
	}
}

// RecordExists reports an explicit create against an existing key.
func RecordExists(key RecordKey) *Error {
	return &Error{
		Code:     CodeRecordExists,
		Message:  fmt.Sprintf("inventory record %s already exists", key),
		Metadata: key.metadata(),
	}
}

// NonzeroStock reports a delete refused because stock remains on hand.
func NonzeroStock(key RecordKey, quantity decimal.Decimal) *Error {
	md := key.metadata()
	md["quantity"] = quantity.String()
	return &Error{
		Code:     CodeNonzeroStock,
		Message:  fmt.Sprintf("inventory record %s still holds %s units; zero it out before deleting", key, quantity),
		Metadata: md,
	}
}

// Internal wraps a persistence or infrastructure failure.
func Internal(op string, err error) *Error {
	return &Error{Code: CodeInternal, Message: op, Err: err}
}
