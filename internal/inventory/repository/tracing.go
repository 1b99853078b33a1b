package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracingUnitOfWork wraps a UnitOfWork so the transaction and every store
// call made inside it produce spans.
type TracingUnitOfWork struct {
	next domain.UnitOfWork
}

// NewTracingUnitOfWork creates a new unit of work with tracing
func NewTracingUnitOfWork(next domain.UnitOfWork) *TracingUnitOfWork {
	return &TracingUnitOfWork{next: next}
}

func (u *TracingUnitOfWork) Execute(ctx context.Context, fn func(repos domain.Repositories) error) error {
	ctx, span := tracer.Start(ctx, "repository.Transaction")
	defer span.End()

	err := u.next.Execute(ctx, func(repos domain.Repositories) error {
		return fn(tracingRepositories{next: repos})
	})
	addDBErrorToSpan(span, err)
	return err
}

type tracingRepositories struct {
	next domain.Repositories
}

func (r tracingRepositories) Records() domain.InventoryRecordStore {
	return NewTracingRecordStore(r.next.Records())
}

func (r tracingRepositories) Transactions() domain.TransactionLog {
	return NewTracingTransactionLog(r.next.Transactions())
}

// TracingRecordStore wraps an InventoryRecordStore with tracing
type TracingRecordStore struct {
	next domain.InventoryRecordStore
}

// NewTracingRecordStore creates a new record store with tracing
func NewTracingRecordStore(next domain.InventoryRecordStore) *TracingRecordStore {
	return &TracingRecordStore{next: next}
}

func keyAttributes(key domain.RecordKey) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("inventory.item_kind", string(key.Kind)),
		attribute.String("inventory.item_id", key.ItemID),
		attribute.String("inventory.location", key.Location),
	}
}

// Find with tracing
func (s *TracingRecordStore) Find(ctx context.Context, key domain.RecordKey) (*domain.InventoryRecord, error) {
	ctx, span := tracer.Start(ctx, "repository.Find", trace.WithAttributes(keyAttributes(key)...))
	defer span.End()

	record, err := s.next.Find(ctx, key)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("inventory.found", record != nil))
	if record != nil {
		span.SetAttributes(
			attribute.String("inventory.quantity", record.Quantity.String()),
			attribute.Int64("inventory.version", record.Version),
		)
	}
	return record, nil
}

// FindByItem with tracing
func (s *TracingRecordStore) FindByItem(ctx context.Context, item domain.ItemRef) ([]domain.InventoryRecord, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByItem",
		trace.WithAttributes(
			attribute.String("inventory.item_kind", string(item.Kind)),
			attribute.String("inventory.item_id", item.ID),
		),
	)
	defer span.End()

	records, err := s.next.FindByItem(ctx, item)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(records)))
	return records, nil
}

// List with tracing
func (s *TracingRecordStore) List(ctx context.Context, filter domain.RecordFilter) ([]domain.InventoryRecord, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.List",
		trace.WithAttributes(
			attribute.String("query.item_kind", string(filter.Kind)),
			attribute.String("query.status", string(filter.Status)),
			attribute.String("query.location", filter.Location),
			attribute.Int("query.limit", filter.Limit),
			attribute.Int("query.offset", filter.Offset),
		),
	)
	defer span.End()

	records, total, err := s.next.List(ctx, filter)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, 0, err
	}

	span.SetAttributes(
		attribute.Int("result.count", len(records)),
		attribute.Int64("result.total", total),
	)
	return records, total, nil
}

// Create with tracing
func (s *TracingRecordStore) Create(ctx context.Context, record *domain.InventoryRecord) error {
	ctx, span := tracer.Start(ctx, "repository.Create", trace.WithAttributes(keyAttributes(record.Key())...))
	defer span.End()

	if err := s.next.Create(ctx, record); err != nil {
		addDBErrorToSpan(span, err)
		return err
	}

	span.SetAttributes(
		attribute.Int("inventory.id", int(record.ID)),
		attribute.String("inventory.quantity", record.Quantity.String()),
	)
	return nil
}

// Update with tracing
func (s *TracingRecordStore) Update(ctx context.Context, record *domain.InventoryRecord, expectedVersion int64) error {
	attrs := append(keyAttributes(record.Key()),
		attribute.String("quantity.new_value", record.Quantity.String()),
		attribute.Int64("inventory.expected_version", expectedVersion),
	)
	ctx, span := tracer.Start(ctx, "repository.Update", trace.WithAttributes(attrs...))
	defer span.End()

	if err := s.next.Update(ctx, record, expectedVersion); err != nil {
		addDBErrorToSpan(span, err)
		return err
	}
	return nil
}

// Delete with tracing
func (s *TracingRecordStore) Delete(ctx context.Context, key domain.RecordKey, expectedVersion int64) error {
	attrs := append(keyAttributes(key), attribute.Int64("inventory.expected_version", expectedVersion))
	ctx, span := tracer.Start(ctx, "repository.Delete", trace.WithAttributes(attrs...))
	defer span.End()

	if err := s.next.Delete(ctx, key, expectedVersion); err != nil {
		addDBErrorToSpan(span, err)
		return err
	}
	return nil
}

// TracingTransactionLog wraps a TransactionLog with tracing
type TracingTransactionLog struct {
	next domain.TransactionLog
}

// NewTracingTransactionLog creates a new transaction log with tracing
func NewTracingTransactionLog(next domain.TransactionLog) *TracingTransactionLog {
	return &TracingTransactionLog{next: next}
}

// Append with tracing
func (l *TracingTransactionLog) Append(ctx context.Context, entry *domain.TransactionLogEntry) error {
	ctx, span := tracer.Start(ctx, "repository.AppendTransaction",
		trace.WithAttributes(
			attribute.String("inventory.item_kind", string(entry.ItemKind)),
			attribute.String("inventory.item_id", entry.ItemID),
			attribute.String("transaction.kind", string(entry.Kind)),
			attribute.String("transaction.quantity_change", entry.QuantityChange.String()),
		),
	)
	defer span.End()

	if err := l.next.Append(ctx, entry); err != nil {
		addDBErrorToSpan(span, err)
		return err
	}

	span.SetAttributes(attribute.Int("transaction.id", int(entry.ID)))
	return nil
}

// History with tracing
func (l *TracingTransactionLog) History(ctx context.Context, item domain.ItemRef, limit, offset int) ([]domain.TransactionLogEntry, error) {
	ctx, span := tracer.Start(ctx, "repository.History",
		trace.WithAttributes(
			attribute.String("inventory.item_kind", string(item.Kind)),
			attribute.String("inventory.item_id", item.ID),
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	entries, err := l.next.History(ctx, item, limit, offset)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(entries)))
	return entries, nil
}

// HasReference with tracing
func (l *TracingTransactionLog) HasReference(ctx context.Context, item domain.ItemRef, referenceKind, referenceID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.HasReference",
		trace.WithAttributes(
			attribute.String("inventory.item_kind", string(item.Kind)),
			attribute.String("inventory.item_id", item.ID),
			attribute.String("transaction.reference_kind", referenceKind),
			attribute.String("transaction.reference_id", referenceID),
		),
	)
	defer span.End()

	found, err := l.next.HasReference(ctx, item, referenceKind, referenceID)
	if err != nil {
		addDBErrorToSpan(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Bool("result.found", found))
	return found, nil
}

// Helper function to add database error details to span
func addDBErrorToSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("inventory.error_code", string(domain.GetCode(err))))
	}
}

var (
	_ domain.UnitOfWork           = (*TracingUnitOfWork)(nil)
	_ domain.InventoryRecordStore = (*TracingRecordStore)(nil)
	_ domain.TransactionLog       = (*TracingTransactionLog)(nil)
	_ domain.UnitOfWork           = (*GormUnitOfWork)(nil)
	_ domain.InventoryRecordStore = (*GormInventoryRepository)(nil)
	_ domain.TransactionLog       = (*GormTransactionLog)(nil)
)
