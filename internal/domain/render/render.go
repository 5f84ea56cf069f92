// Package render turns aggregator output and record events into Slack
// message payloads.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ringthegong/gong/internal/domain/rank"
	"github.com/ringthegong/gong/internal/domain/record"
)

// Slack response visibility.
const (
	ResponseInChannel = "in_channel" // visible to the whole channel
	ResponseEphemeral = "ephemeral"  // visible only to the invoker
)

// Message is the slash-command response payload Slack renders.
type Message struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// InChannel wraps text in a channel-visible message.
func InChannel(text string) Message {
	return Message{ResponseType: ResponseInChannel, Text: text}
}

// Ephemeral wraps text in an invoker-only message.
func Ephemeral(text string) Message {
	return Message{ResponseType: ResponseEphemeral, Text: text}
}

// medals decorate the top three leaderboard positions.
var medals = [3]string{"🥇", "🥈", "🥉"}

// Confirmation celebrates a freshly stored record in the channel. The
// optional details ride on their own line.
func Confirmation(rec record.Record) Message {
	var text string
	switch rec.Metric {
	case record.MetricPilot:
		text = fmt.Sprintf("🎉 %s just signed %s! Keep them coming!", rec.Name, pilots(rec.Value))
	case record.MetricTime:
		text = fmt.Sprintf("⚡ %s took a deal from discovery to pilot in %s!", rec.Name, days(rec.Value))
	default:
		text = fmt.Sprintf("🔔 %s just rang the gong with %s in ARR!", rec.Name, Dollars(rec.Value))
	}
	if rec.Details != "" {
		text += "\n> " + rec.Details
	}
	return InChannel(text)
}

// Leaderboard renders the ranked entries for one metric and month.
func Leaderboard(metric record.Metric, month string, entries []rank.Entry) Message {
	header := fmt.Sprintf("🏆 *%s Leaderboard* (%s)", metricTitle(metric), month)

	if len(entries) == 0 {
		return InChannel(header + "\nNo " + string(metric) + " records yet this month. Ring the gong and claim the top spot!")
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, header)
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%s %s: %s", rankMark(i), e.Name, entryValue(metric, e)))
	}
	return InChannel(strings.Join(lines, "\n"))
}

// Help returns the static usage reference, visible only to the invoker.
func Help() Message {
	return Ephemeral(strings.Join([]string{
		"*Gong* tracks your team's wins and ranks this month's top performers.",
		"",
		"*Commands*",
		"• `/gong record arr <name> <amount> [details]` - log an ARR deal in dollars",
		"• `/gong record pilot <name> <count> [details]` - log signed pilots",
		"• `/gong record time <name> <days> [details]` - log discovery-to-pilot time",
		"• `/gong leaderboard <arr|pilot|time>` - show this month's leaderboard",
		"• `/gong arr`, `/gong pilot`, `/gong time` - leaderboard shortcuts",
		"• `/gong help` - show this message",
	}, "\n"))
}

// InternalError is the generic reply for store or unexpected failures; the
// cause goes to the logs, never to the channel.
func InternalError() Message {
	return Ephemeral("😵 Something went wrong recording that. Please try again.")
}

// rankMark returns the decoration for a zero-based position: medals for the
// podium, a plain numeric rank below it.
func rankMark(i int) string {
	if i < len(medals) {
		return medals[i]
	}
	return strconv.Itoa(i+1) + "."
}

// entryValue renders the metric-specific suffix for one leaderboard row.
func entryValue(metric record.Metric, e rank.Entry) string {
	switch metric {
	case record.MetricPilot:
		return pilots(e.Total)
	case record.MetricTime:
		v := fmt.Sprintf("%s avg", days(math.Round(e.Average)))
		if e.Count > 1 {
			v += fmt.Sprintf(" (%d deals)", e.Count)
		}
		return v
	default:
		v := Dollars(e.Total)
		if e.Count > 1 {
			v += fmt.Sprintf(" (%d deals)", e.Count)
		}
		return v
	}
}

// metricTitle maps a metric to its leaderboard heading.
func metricTitle(m record.Metric) string {
	switch m {
	case record.MetricPilot:
		return "Pilot"
	case record.MetricTime:
		return "Time to Pilot"
	default:
		return "ARR"
	}
}

// Dollars formats v as US currency, rounded to whole dollars with
// thousands grouping.
func Dollars(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "$" + groupThousands(strconv.FormatInt(n, 10))
}

// groupThousands inserts commas into a plain decimal digit string.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// pilots pluralizes a pilot count, dropping trailing zeros.
func pilots(v float64) string {
	if v == 1 {
		return "1 pilot"
	}
	return number(v) + " pilots"
}

// days pluralizes a day count, dropping trailing zeros.
func days(v float64) string {
	if v == 1 {
		return "1 day"
	}
	return number(v) + " days"
}

// number renders a value without insignificant trailing zeros.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
