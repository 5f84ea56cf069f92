// Package command parses slash-command text and dispatches it to the
// record-creation and leaderboard flows.
package command

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ringthegong/gong/internal/domain/rank"
	"github.com/ringthegong/gong/internal/domain/record"
	"github.com/ringthegong/gong/internal/domain/render"
	"github.com/ringthegong/gong/pkg/metrics"
)

const recordUsage = "Usage: `/gong record <arr|pilot|time> <name> <value> [details]`"

// RecordStore is the persistence dependency the router drives.
type RecordStore interface {
	Add(ctx context.Context, metric record.Metric, name string, value float64, details string, asOf time.Time) (record.Record, error)
	List(ctx context.Context, metric record.Metric, asOf time.Time) ([]record.Record, error)
}

// Router validates and routes raw command text. It is stateless across
// invocations; the clock is injectable so month scoping stays testable.
type Router struct {
	store RecordStore
	now   func() time.Time
}

// Option applies a configuration option to the Router.
type Option func(*Router)

// WithClock overrides the wall clock used to stamp and scope records.
func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Router over the given record store.
func New(store RecordStore, opts ...Option) *Router {
	r := &Router{store: store, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dispatch routes raw slash-command text to a response message. Validation
// problems come back as ephemeral messages, never as errors; a non-nil
// error means the store failed and the caller should answer with the
// generic internal-error message.
func (r *Router) Dispatch(ctx context.Context, text string) (render.Message, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		metrics.CommandDispatched("help")
		return render.Help(), nil
	}

	cmd := strings.ToLower(fields[0])
	args := fields[1:]
	metrics.CommandDispatched(cmd)

	switch cmd {
	case "help":
		return render.Help(), nil

	case "record":
		return r.record(ctx, args)

	case "leaderboard":
		if len(args) == 0 {
			return render.Ephemeral("Which leaderboard? Usage: `/gong leaderboard <arr|pilot|time>`"), nil
		}
		metric, err := record.ParseMetric(args[0])
		if err != nil {
			return unknownMetric(args[0]), nil
		}
		return r.leaderboard(ctx, metric)

	case "arr", "pilot", "time":
		// Bare shortcut for the matching leaderboard.
		metric, _ := record.ParseMetric(cmd)
		return r.leaderboard(ctx, metric)

	default:
		return render.Ephemeral(fmt.Sprintf("Unknown command %q. Try `/gong help`.", cmd)), nil
	}
}

func (r *Router) record(ctx context.Context, args []string) (render.Message, error) {
	if len(args) < 3 {
		return render.Ephemeral(recordUsage), nil
	}

	metric, err := record.ParseMetric(args[0])
	if err != nil {
		return unknownMetric(args[0]), nil
	}

	name := args[1]
	value, err := strconv.ParseFloat(args[2], 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return render.Ephemeral(fmt.Sprintf("%q is not a number. %s", args[2], recordUsage)), nil
	}
	if value <= 0 {
		return render.Ephemeral("The value must be greater than zero. " + recordUsage), nil
	}

	details := strings.Join(args[3:], " ")
	rec, err := r.store.Add(ctx, metric, name, value, details, r.now())
	if err != nil {
		return render.Message{}, err
	}
	return render.Confirmation(rec), nil
}

func (r *Router) leaderboard(ctx context.Context, metric record.Metric) (render.Message, error) {
	asOf := r.now()
	records, err := r.store.List(ctx, metric, asOf)
	if err != nil {
		return render.Message{}, err
	}
	metrics.LeaderboardQueried(string(metric))
	return render.Leaderboard(metric, record.MonthOf(asOf), rank.Build(records, metric)), nil
}

func unknownMetric(s string) render.Message {
	return render.Ephemeral(fmt.Sprintf("Unknown type %q. Valid types: arr, pilot, time.", s))
}
