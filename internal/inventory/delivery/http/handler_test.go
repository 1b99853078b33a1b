package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/internal/inventory/inventorytest"
	"github.com/tair/inventory-ledger/internal/inventory/usecase/command"
	"github.com/tair/inventory-ledger/internal/inventory/usecase/query"
)

var material42 = domain.ItemRef{Kind: domain.ItemKindMaterial, ID: "42"}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

type testServer struct {
	store  *inventorytest.MemStore
	router *mux.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := inventorytest.NewMemStore()
	details := inventorytest.DetailsWithReorderPoint(material42, 5)
	locations := inventorytest.Locations{"A": true, "B": true}
	notifier := command.NewNotifier(&inventorytest.Publisher{}, &inventorytest.Cache{})
	opts := command.Options{
		Retry:   command.RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond},
		Timeout: time.Second,
		Now:     func() time.Time { return inventorytest.Now },
	}

	adjust := command.NewAdjustInventoryHandler(store, details, notifier, opts)
	h := NewInventoryHandler(
		Commands{
			Create:    command.NewCreateInventoryHandler(store, details, locations, notifier, opts),
			Delete:    command.NewDeleteInventoryHandler(store, notifier, opts),
			Adjust:    adjust,
			Transfer:  command.NewTransferInventoryHandler(store, details, locations, notifier, opts),
			Reconcile: command.NewReconcileInventoryHandler(adjust),
		},
		Queries{
			Status:   query.NewGetStatusHandler(store.Records(), details, nil),
			List:     query.NewListInventoryHandler(store.Records()),
			History:  query.NewGetHistoryHandler(store.Transactions()),
			LowStock: query.NewGetLowStockHandler(store.Records(), details, 0),
		},
	)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	h.RegisterHealthCheck(router, pinger{})
	return &testServer{store: store, router: router}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func TestAdjustAndStatus(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodPost, "/api/inventory/adjustments", map[string]interface{}{
		"item_kind":       "material",
		"item_id":         "42",
		"quantity_change": "10",
		"reason_code":     "purchase_receipt",
		"location":        "A",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, resp.Success)

	rec, resp = s.do(t, http.MethodGet, "/api/inventory/material/42/status?location=A", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "10", data["quantity"])
	assert.Equal(t, string(domain.StatusInStock), data["status"])

	rec, resp = s.do(t, http.MethodGet, "/api/inventory/material/42/transactions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data, 1)
}

func TestAdjust_Insufficient(t *testing.T) {
	s := newTestServer(t)
	s.store.Seed(domain.NewRecordKey(material42.Kind, material42.ID, "A"), 3, 5)

	rec, resp := s.do(t, http.MethodPost, "/api/inventory/adjustments", map[string]interface{}{
		"item_kind":       "material",
		"item_id":         "42",
		"quantity_change": -4,
		"reason_code":     "CONSUMPTION",
		"location":        "A",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, domain.CodeInsufficientInventory, resp.Code)
	assert.Equal(t, "4", resp.Details["requested"])
	assert.Equal(t, "3", resp.Details["available"])
}

func TestAdjust_BadInput(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodPost, "/api/inventory/adjustments", map[string]interface{}{
		"item_kind":       "widget",
		"item_id":         "42",
		"quantity_change": 1,
		"reason_code":     "CORRECTION",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.CodeValidation, resp.Code)

	rec, resp = s.do(t, http.MethodPost, "/api/inventory/adjustments", map[string]interface{}{
		"item_kind":       "material",
		"item_id":         "42",
		"quantity_change": 1,
		"reason_code":     "GIFT",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.CodeValidation, resp.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/adjustments", bytes.NewBufferString("{"))
	raw := httptest.NewRecorder()
	s.router.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestTransfer(t *testing.T) {
	s := newTestServer(t)
	s.store.Seed(domain.NewRecordKey(material42.Kind, material42.ID, "A"), 7, 5)

	rec, resp := s.do(t, http.MethodPost, "/api/inventory/transfers", map[string]interface{}{
		"item_kind":     "material",
		"item_id":       "42",
		"quantity":      "7",
		"from_location": "A",
		"to_location":   "B",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["from_removed"])

	to := s.store.Record(domain.NewRecordKey(material42.Kind, material42.ID, "B"))
	require.NotNil(t, to)
	assert.True(t, to.Quantity.Equal(decimal.NewFromInt(7)))

	rec, resp = s.do(t, http.MethodPost, "/api/inventory/transfers", map[string]interface{}{
		"item_kind":     "material",
		"item_id":       "42",
		"quantity":      "1",
		"from_location": "B",
		"to_location":   "Z",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domain.CodeLocationNotFound, resp.Code)
}

func TestReconcile(t *testing.T) {
	s := newTestServer(t)
	s.store.Seed(domain.NewRecordKey(material42.Kind, material42.ID, "A"), 10, 5)

	rec, resp := s.do(t, http.MethodPost, "/api/inventory/reconciliations", map[string]interface{}{
		"item_kind":       "material",
		"item_id":         "42",
		"actual_quantity": "10",
		"count_id":        "cc-1",
		"location":        "A",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Inventory already matches the physical count", resp.Message)
	assert.Empty(t, s.store.Log())

	rec, resp = s.do(t, http.MethodPost, "/api/inventory/reconciliations", map[string]interface{}{
		"item_kind":       "material",
		"item_id":         "42",
		"actual_quantity": "8",
		"count_id":        "cc-2",
		"location":        "A",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "-2", data["adjustment"])
}

func TestCreateListAndDelete(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodPost, "/api/inventory", map[string]string{"item_kind": "material", "item_id": "42", "location": "A"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := s.do(t, http.MethodPost, "/api/inventory", map[string]string{"item_kind": "material", "item_id": "42", "location": "A"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, domain.CodeRecordExists, resp.Code)

	rec, resp = s.do(t, http.MethodGet, "/api/inventory?kind=material&status=out_of_stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 1, page["total"])

	rec, resp = s.do(t, http.MethodDelete, "/api/inventory/material/42", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, resp.Data.(map[string]interface{})["removed"])
}

func TestDelete_NonzeroStock(t *testing.T) {
	s := newTestServer(t)
	s.store.Seed(domain.NewRecordKey(material42.Kind, material42.ID, "A"), 2, 5)

	rec, resp := s.do(t, http.MethodDelete, "/api/inventory/material/42", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, domain.CodeNonzeroStock, resp.Code)
}

func TestLowStock(t *testing.T) {
	s := newTestServer(t)
	s.store.Seed(domain.NewRecordKey(material42.Kind, material42.ID, "A"), 2, 5)
	s.store.Seed(domain.NewRecordKey(material42.Kind, material42.ID, "B"), 9, 5)

	rec, resp := s.do(t, http.MethodGet, "/api/inventory/low-stock?threshold=50", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].(map[string]interface{})["location"])

	rec, resp = s.do(t, http.MethodGet, "/api/inventory/low-stock?threshold=lots", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.CodeValidation, resp.Code)
}

func TestUnknownKindInPath(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/api/inventory/gadget/1/status", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.CodeValidation, resp.Code)
}

func TestHealthCheck(t *testing.T) {
	router := mux.NewRouter()
	h := NewInventoryHandler(Commands{}, Queries{})
	h.RegisterHealthCheck(router, pinger{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s := newTestServer(t)
	rec, resp := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestStatusFor(t *testing.T) {
	cases := map[domain.Code]int{
		domain.CodeValidation:             http.StatusBadRequest,
		domain.CodeEntityNotFound:         http.StatusNotFound,
		domain.CodeLocationNotFound:       http.StatusNotFound,
		domain.CodeInsufficientInventory:  http.StatusConflict,
		domain.CodeConcurrentModification: http.StatusConflict,
		domain.CodeRecordExists:           http.StatusConflict,
		domain.CodeNonzeroStock:           http.StatusConflict,
		domain.CodeDuplicateReference:     http.StatusConflict,
		domain.CodeInternal:               http.StatusInternalServerError,
		domain.CodeUnknown:                http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, statusFor(code), code)
	}
}

func TestHistory_OldestFirst(t *testing.T) {
	s := newTestServer(t)

	for _, change := range []string{"10", "-3"} {
		rec, _ := s.do(t, http.MethodPost, "/api/inventory/adjustments", map[string]interface{}{
			"item_kind":       "material",
			"item_id":         "42",
			"quantity_change": change,
			"reason_code":     "CORRECTION",
			"location":        "A",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec, resp := s.do(t, http.MethodGet, "/api/inventory/material/42/transactions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := resp.Data.([]interface{})
	require.Len(t, entries, 2)
	assert.Equal(t, "10", entries[0].(map[string]interface{})["quantity_change"])
	assert.Equal(t, "-3", entries[1].(map[string]interface{})["quantity_change"])
}
