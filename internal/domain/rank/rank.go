// Package rank aggregates records into ordered leaderboard entries.
package rank

import (
	"sort"
	"strings"

	"github.com/ringthegong/gong/internal/domain/record"
)

// MaxEntries caps every leaderboard at the top ten contributors.
const MaxEntries = 10

// Entry is one leaderboard row, derived at read time and never persisted.
type Entry struct {
	Name    string  // display name, casing of the contributor's first record
	Total   float64 // sum of record values
	Count   int     // number of records
	Average float64 // Total / Count, the ranking key for the time metric
}

// Build groups records by contributor and returns at most MaxEntries rows
// in ranking order.
//
// Grouping is case-insensitive: "sarah" and "Sarah" share a row, displayed
// with the casing of the first record seen. The time metric ranks ascending
// by average (lower is better); arr and pilot rank descending by total.
// The sort is stable over first-appearance order, so ties keep the earliest
// contributor first for a fixed input ordering.
func Build(records []record.Record, metric record.Metric) []Entry {
	groups := make(map[string]*Entry)
	order := make([]string, 0)

	for _, rec := range records {
		key := strings.ToLower(rec.Name)
		e, ok := groups[key]
		if !ok {
			e = &Entry{Name: rec.Name}
			groups[key] = e
			order = append(order, key)
		}
		e.Total += rec.Value
		e.Count++
	}

	entries := make([]Entry, 0, len(order))
	for _, key := range order {
		e := groups[key]
		e.Average = e.Total / float64(e.Count)
		entries = append(entries, *e)
	}

	if metric == record.MetricTime {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Average < entries[j].Average
		})
	} else {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Total > entries[j].Total
		})
	}

	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}
