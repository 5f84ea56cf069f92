// Package repository builds and reads month-scoped achievement records on
// top of the key-value store contract.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ringthegong/gong/internal/adapters/kvstore"
	"github.com/ringthegong/gong/internal/domain/record"
	"github.com/ringthegong/gong/pkg/logger"
	"github.com/ringthegong/gong/pkg/metrics"
)

// RecordStore persists records under "{month}:{metric}:{ts}:{suffix}" keys
// and reads them back with a month-scoped prefix scan. It performs no
// validation; callers vet metric and value before writing.
type RecordStore struct {
	store  kvstore.Store
	logger logger.Logger
}

// New creates a RecordStore over the given backend.
func New(store kvstore.Store, opts ...Option) *RecordStore {
	s := &RecordStore{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Add constructs a record stamped at asOf, persists it, and returns it.
// Side effect: exactly one store write.
func (s *RecordStore) Add(ctx context.Context, metric record.Metric, name string, value float64, details string, asOf time.Time) (record.Record, error) {
	rec := record.New(metric, name, value, details, asOf)

	val, err := rec.Encode()
	if err != nil {
		return record.Record{}, err
	}
	if err := s.store.Set(ctx, record.NewKey(rec), val); err != nil {
		metrics.RecordStoreError()
		return record.Record{}, fmt.Errorf("persist record: %w", err)
	}

	metrics.RecordCreated(string(metric))
	return rec, nil
}

// List returns every record of metric belonging to asOf's month, in key
// order. Entries that fail to decode are skipped; aggregation is
// best-effort over whatever is readable.
func (s *RecordStore) List(ctx context.Context, metric record.Metric, asOf time.Time) ([]record.Record, error) {
	prefix := record.KeyPrefix(record.MonthOf(asOf), metric)

	keys, err := s.store.Keys(ctx, prefix)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("scan records: %w", err)
	}

	records := make([]record.Record, 0, len(keys))
	for _, key := range keys {
		val, err := s.store.Get(ctx, key)
		if err != nil {
			// A key can vanish between the scan and the read; treat it the
			// same as a corrupt value.
			s.logger.Debug(ctx, "skipping unreadable record", logger.String("key", key), logger.Error(err))
			metrics.RecordSkipped()
			continue
		}
		rec, err := record.Decode(val)
		if err != nil {
			s.logger.Debug(ctx, "skipping malformed record", logger.String("key", key), logger.Error(err))
			metrics.RecordSkipped()
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
