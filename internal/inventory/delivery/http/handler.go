package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/internal/inventory/usecase/command"
	"github.com/tair/inventory-ledger/internal/inventory/usecase/query"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Commands bundles the mutating use cases served over HTTP.
type Commands struct {
	Create    *command.CreateInventoryHandler
	Delete    *command.DeleteInventoryHandler
	Adjust    *command.AdjustInventoryHandler
	Transfer  *command.TransferInventoryHandler
	Reconcile *command.ReconcileInventoryHandler
}

// Queries bundles the read use cases served over HTTP.
type Queries struct {
	Status   *query.GetStatusHandler
	List     *query.ListInventoryHandler
	History  *query.GetHistoryHandler
	LowStock *query.GetLowStockHandler
}

// InventoryHandler handles HTTP requests for inventory
type InventoryHandler struct {
	commands Commands
	queries  Queries
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(commands Commands, queries Queries) *InventoryHandler {
	return &InventoryHandler{commands: commands, queries: queries}
}

type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    domain.Code       `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type createInventoryRequest struct {
	ItemKind string `json:"item_kind"`
	ItemID   string `json:"item_id"`
	Location string `json:"location"`
}

type adjustInventoryRequest struct {
	ItemKind       string          `json:"item_kind"`
	ItemID         string          `json:"item_id"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	ReasonCode     string          `json:"reason_code"`
	ReasonText     string          `json:"reason_text"`
	Location       string          `json:"location"`
	ReferenceID    string          `json:"reference_id"`
	ReferenceKind  string          `json:"reference_kind"`
	PerformedBy    string          `json:"performed_by"`
}

type transferInventoryRequest struct {
	ItemKind     string          `json:"item_kind"`
	ItemID       string          `json:"item_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	Notes        string          `json:"notes"`
	ReferenceID  string          `json:"reference_id"`
	PerformedBy  string          `json:"performed_by"`
}

type reconcileInventoryRequest struct {
	ItemKind       string          `json:"item_kind"`
	ItemID         string          `json:"item_id"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	CountID        string          `json:"count_id"`
	Notes          string          `json:"notes"`
	Location       string          `json:"location"`
	PerformedBy    string          `json:"performed_by"`
}

// CreateInventory handles POST /api/inventory
// @Summary Create inventory record
// @Description Register a zero-quantity record for a catalog item at a storage location
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body createInventoryRequest true "Record key"
// @Success 201 {object} Response{data=domain.InventoryRecord}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/inventory [post]
func (h *InventoryHandler) CreateInventory(w http.ResponseWriter, r *http.Request) {
	var req createInventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	kind, err := domain.ParseItemKind(req.ItemKind)
	if err != nil {
		respondError(w, r, err)
		return
	}

	record, err := h.commands.Create.Handle(r.Context(), command.CreateInventoryCommand{
		ItemKind: kind,
		ItemID:   req.ItemID,
		Location: req.Location,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Inventory created successfully",
		Data:    record,
	})
}

// DeleteInventory handles DELETE /api/inventory/{kind}/{item_id}
// @Summary Delete item stock records
// @Description Remove every zero-quantity record of an item; refused while stock remains
// @Tags Inventory
// @Produce json
// @Param kind path string true "Item kind" Enums(product, material, tool)
// @Param item_id path string true "Item ID"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /api/inventory/{kind}/{item_id} [delete]
func (h *InventoryHandler) DeleteInventory(w http.ResponseWriter, r *http.Request) {
	item, ok := itemFromPath(w, r)
	if !ok {
		return
	}

	removed, err := h.commands.Delete.Handle(r.Context(), command.DeleteInventoryCommand{ItemKind: item.Kind, ItemID: item.ID})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Inventory deleted successfully",
		Data:    map[string]int{"removed": removed},
	})
}

// AdjustInventory handles POST /api/inventory/adjustments
// @Summary Adjust inventory
// @Description Apply a signed quantity change with a reason code and append a ledger entry
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body adjustInventoryRequest true "Adjustment"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustInventory(w http.ResponseWriter, r *http.Request) {
	var req adjustInventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	kind, err := domain.ParseItemKind(req.ItemKind)
	if err != nil {
		respondError(w, r, err)
		return
	}
	reason, err := domain.ParseReasonCode(req.ReasonCode)
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.commands.Adjust.Handle(r.Context(), command.AdjustInventoryCommand{
		ItemKind:       kind,
		ItemID:         req.ItemID,
		QuantityChange: req.QuantityChange,
		ReasonCode:     reason,
		ReasonText:     req.ReasonText,
		Location:       req.Location,
		ReferenceID:    req.ReferenceID,
		ReferenceKind:  req.ReferenceKind,
		PerformedBy:    performedBy(r, req.PerformedBy),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Inventory adjusted successfully",
		Data: map[string]interface{}{
			"record":            result.Record,
			"previous_quantity": result.PreviousQuantity,
			"transaction":       result.Entry,
		},
	})
}

// TransferInventory handles POST /api/inventory/transfers
// @Summary Transfer inventory
// @Description Move stock between two storage locations in one transaction
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body transferInventoryRequest true "Transfer"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/inventory/transfers [post]
func (h *InventoryHandler) TransferInventory(w http.ResponseWriter, r *http.Request) {
	var req transferInventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	kind, err := domain.ParseItemKind(req.ItemKind)
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.commands.Transfer.Handle(r.Context(), command.TransferInventoryCommand{
		ItemKind:     kind,
		ItemID:       req.ItemID,
		Quantity:     req.Quantity,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		Notes:        req.Notes,
		ReferenceID:  req.ReferenceID,
		PerformedBy:  performedBy(r, req.PerformedBy),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Inventory transferred successfully",
		Data: map[string]interface{}{
			"from":         result.From,
			"to":           result.To,
			"from_removed": result.FromRemoved,
			"transaction":  result.Entry,
		},
	})
}

// ReconcileInventory handles POST /api/inventory/reconciliations
// @Summary Reconcile inventory
// @Description Set the quantity to a physical count, recording the difference as an adjustment
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body reconcileInventoryRequest true "Physical count"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /api/inventory/reconciliations [post]
func (h *InventoryHandler) ReconcileInventory(w http.ResponseWriter, r *http.Request) {
	var req reconcileInventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	kind, err := domain.ParseItemKind(req.ItemKind)
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.commands.Reconcile.Handle(r.Context(), command.ReconcileInventoryCommand{
		ItemKind:       kind,
		ItemID:         req.ItemID,
		ActualQuantity: req.ActualQuantity,
		CountID:        req.CountID,
		Notes:          req.Notes,
		Location:       req.Location,
		PerformedBy:    performedBy(r, req.PerformedBy),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	message := "Inventory reconciled successfully"
	if result.Adjustment.IsZero() {
		message = "Inventory already matches the physical count"
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data: map[string]interface{}{
			"record":            result.Record,
			"previous_quantity": result.PreviousQuantity,
			"adjustment":        result.Adjustment,
			"transaction":       result.Entry,
		},
	})
}

// GetStatus handles GET /api/inventory/{kind}/{item_id}/status
// @Summary Get stock status
// @Description Quantity and status at one location, or aggregated across locations when none is given
// @Tags Inventory
// @Produce json
// @Param kind path string true "Item kind" Enums(product, material, tool)
// @Param item_id path string true "Item ID"
// @Param location query string false "Storage location"
// @Success 200 {object} Response{data=query.StatusView}
// @Failure 404 {object} Response
// @Router /api/inventory/{kind}/{item_id}/status [get]
func (h *InventoryHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	item, ok := itemFromPath(w, r)
	if !ok {
		return
	}

	view, err := h.queries.Status.Handle(r.Context(), query.GetStatusQuery{
		ItemKind: item.Kind,
		ItemID:   item.ID,
		Location: r.URL.Query().Get("location"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// GetHistory handles GET /api/inventory/{kind}/{item_id}/transactions
// @Summary Get transaction history
// @Description Ledger entries for an item, oldest first
// @Tags Inventory
// @Produce json
// @Param kind path string true "Item kind" Enums(product, material, tool)
// @Param item_id path string true "Item ID"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} Response{data=[]domain.TransactionLogEntry}
// @Router /api/inventory/{kind}/{item_id}/transactions [get]
func (h *InventoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	item, ok := itemFromPath(w, r)
	if !ok {
		return
	}
	limit, offset := pagination(r)

	entries, err := h.queries.History.Handle(r.Context(), query.GetHistoryQuery{
		ItemKind: item.Kind,
		ItemID:   item.ID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: entries})
}

// ListInventory handles GET /api/inventory
// @Summary List inventory
// @Description Paged records filtered by kind, status, location or item text
// @Tags Inventory
// @Produce json
// @Param kind query string false "Item kind"
// @Param status query string false "Stock status" Enums(IN_STOCK, LOW_STOCK, OUT_OF_STOCK)
// @Param location query string false "Storage location"
// @Param q query string false "Item ID search"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} Response
// @Router /api/inventory [get]
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	limit, offset := pagination(r)

	page, err := h.queries.List.Handle(r.Context(), query.ListInventoryQuery{
		ItemKind: domain.ItemKind(strings.ToLower(params.Get("kind"))),
		Status:   domain.StockStatus(strings.ToUpper(params.Get("status"))),
		Location: params.Get("location"),
		Text:     params.Get("q"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: page})
}

// GetLowStock handles GET /api/inventory/low-stock
// @Summary Low stock report
// @Description Records whose quantity is at or below the given percentage of the reorder point
// @Tags Inventory
// @Produce json
// @Param threshold query number false "Threshold percentage (default 100)"
// @Param kind query string false "Item kind"
// @Success 200 {object} Response{data=[]query.LowStockItem}
// @Router /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	threshold := decimal.NewFromInt(100)
	if raw := params.Get("threshold"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(w, r, domain.Validation("threshold must be a number", map[string]string{"threshold": raw}))
			return
		}
		threshold = parsed
	}

	items, err := h.queries.LowStock.Handle(r.Context(), query.GetLowStockQuery{
		ThresholdPercentage: threshold,
		ItemKind:            domain.ItemKind(strings.ToLower(params.Get("kind"))),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: items})
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/inventory", h.ListInventory).Methods("GET")
	router.HandleFunc("/api/inventory", h.CreateInventory).Methods("POST")
	router.HandleFunc("/api/inventory/low-stock", h.GetLowStock).Methods("GET")
	router.HandleFunc("/api/inventory/adjustments", h.AdjustInventory).Methods("POST")
	router.HandleFunc("/api/inventory/transfers", h.TransferInventory).Methods("POST")
	router.HandleFunc("/api/inventory/reconciliations", h.ReconcileInventory).Methods("POST")
	router.HandleFunc("/api/inventory/{kind}/{item_id}", h.DeleteInventory).Methods("DELETE")
	router.HandleFunc("/api/inventory/{kind}/{item_id}/status", h.GetStatus).Methods("GET")
	router.HandleFunc("/api/inventory/{kind}/{item_id}/transactions", h.GetHistory).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db Pinger) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Health check failed")
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy",
		})
	}).Methods("GET")
}

// statusFor maps ledger error codes onto HTTP status codes.
func statusFor(code domain.Code) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeEntityNotFound, domain.CodeLocationNotFound:
		return http.StatusNotFound
	case domain.CodeInsufficientInventory, domain.CodeConcurrentModification,
		domain.CodeRecordExists, domain.CodeNonzeroStock, domain.CodeDuplicateReference:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.GetCode(err)
	status := statusFor(code)

	resp := Response{Success: false, Code: code, Details: domain.GetMetadata(err), Error: err.Error()}
	if status == http.StatusInternalServerError {
		logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Inventory request failed")
		resp.Error = "Internal server error"
		resp.Details = nil
		if code == domain.CodeUnknown {
			resp.Code = domain.CodeInternal
		}
	} else if e := (*domain.Error)(nil); errors.As(err, &e) {
		resp.Error = e.Message
	}

	respondJSON(w, status, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
			Code:    domain.CodeValidation,
		})
		return false
	}
	return true
}

func itemFromPath(w http.ResponseWriter, r *http.Request) (domain.ItemRef, bool) {
	vars := mux.Vars(r)
	kind, err := domain.ParseItemKind(vars["kind"])
	if err != nil {
		respondError(w, r, err)
		return domain.ItemRef{}, false
	}
	return domain.ItemRef{Kind: kind, ID: vars["item_id"]}, true
}

func pagination(r *http.Request) (int, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}

// performedBy falls back to the X-User-ID header set by the gateway.
func performedBy(r *http.Request, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	return r.Header.Get("X-User-ID")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
