// Package record contains the achievement record model passed between layers.
package record

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Metric identifies the kind of achievement a record reports.
type Metric string

// Supported metrics.
const (
	MetricARR   Metric = "arr"   // dollars of annual recurring revenue
	MetricPilot Metric = "pilot" // pilot signups
	MetricTime  Metric = "time"  // discovery-to-pilot days
)

// Metrics lists every supported metric in display order.
func Metrics() []Metric {
	return []Metric{MetricARR, MetricPilot, MetricTime}
}

// ParseMetric validates a user-supplied metric name. Matching is
// case-insensitive.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case MetricARR:
		return MetricARR, nil
	case MetricPilot:
		return MetricPilot, nil
	case MetricTime:
		return MetricTime, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Record is one immutable logged achievement. Fields mirror the stored JSON
// value; records are never updated or deleted once written.
type Record struct {
	Metric    Metric  `json:"type"`
	Name      string  `json:"name"`              // contributor display name, case preserved
	Value     float64 `json:"value"`             // dollars for arr, count for pilot, days for time
	Details   string  `json:"details,omitempty"` // optional free-text annotation
	Timestamp int64   `json:"timestamp"`         // creation instant, epoch milliseconds
	Date      string  `json:"date"`              // RFC3339 duplicate of Timestamp for display
	Month     string  `json:"month"`             // YYYY-MM period the record belongs to
}

// New builds a record stamped at asOf.
func New(metric Metric, name string, value float64, details string, asOf time.Time) Record {
	return Record{
		Metric:    metric,
		Name:      name,
		Value:     value,
		Details:   details,
		Timestamp: asOf.UnixMilli(),
		Date:      asOf.Format(time.RFC3339),
		Month:     MonthOf(asOf),
	}
}

// MonthOf formats t's month as zero-padded YYYY-MM in server-local time.
func MonthOf(t time.Time) string {
	return t.Format("2006-01")
}

// KeyPrefix returns the scan prefix covering every record of one metric
// within one month.
func KeyPrefix(month string, metric Metric) string {
	return month + ":" + string(metric) + ":"
}

// NewKey returns a fresh store key for r. The key embeds the creation
// timestamp plus a short random suffix so that two records written in the
// same millisecond never overwrite each other.
func NewKey(r Record) string {
	return fmt.Sprintf("%s%d:%s", KeyPrefix(r.Month, r.Metric), r.Timestamp, uuid.NewString()[:8])
}

// Encode serializes r into the string form stored as the key's value.
func (r Record) Encode() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(b), nil
}

// Decode parses a store value produced by Encode. Values that do not carry
// at least a metric, a name, and a timestamp are rejected so that callers
// can skip corrupt entries.
func Decode(s string) (Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if _, err := ParseMetric(string(r.Metric)); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if r.Name == "" || r.Timestamp == 0 {
		return Record{}, ErrMalformedRecord
	}
	return r, nil
}
