package history

import (
	"strconv"
	"time"

	"github.com/roach88/busybox/internal/eventlog"
)

// DateLayout renders timestamps as "11/14/2023 at 22:13:20 UTC".
const DateLayout = "01/02/2006 at 15:04:05 MST"

// Formatter turns an epoch-millisecond timestamp into display text.
type Formatter func(ts int64) string

// DateFormatter returns a Formatter that renders DateLayout in loc.
// A nil loc renders in UTC.
func DateFormatter(loc *time.Location) Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return func(ts int64) string {
		return time.UnixMilli(ts).In(loc).Format(DateLayout)
	}
}

// Row is one projected history entry.
type Row struct {
	Kind  eventlog.Kind `json:"kind"`
	At    int64         `json:"at"`
	Value int           `json:"value,omitempty"`
	Text  string        `json:"text"`
}

// Projection is the ordered history plus any tokens that had to be skipped.
type Projection struct {
	Rows   []Row
	Issues []eventlog.Issue
}

// Lines returns the display text of every row in order.
func (p Projection) Lines() []string {
	lines := make([]string, len(p.Rows))
	for i, row := range p.Rows {
		lines[i] = row.Text
	}
	return lines
}

// Options controls row rendering. Zero fields take defaults: English labels
// and DateFormatter(time.UTC).
type Options struct {
	Labels Labels
	Format Formatter
}

func (o Options) withDefaults() Options {
	if o.Labels == (Labels{}) {
		o.Labels = DefaultLabels()
	}
	if o.Format == nil {
		o.Format = DateFormatter(time.UTC)
	}
	return o
}

// Project decodes both logs and renders them as rows.
func Project(pressRaw, shakeRaw string, opts Options) Projection {
	opts = opts.withDefaults()

	presses, pressIssues := eventlog.Decode(pressRaw, eventlog.KindPress)
	shakes, shakeIssues := eventlog.Decode(shakeRaw, eventlog.KindShake)

	p := Projection{
		Rows:   make([]Row, 0, len(presses)+len(shakes)),
		Issues: append(pressIssues, shakeIssues...),
	}
	for _, e := range presses {
		p.Rows = append(p.Rows, Row{
			Kind:  e.Kind,
			At:    e.At,
			Value: e.Value,
			Text: opts.Labels.Press + ": " + opts.Format(e.At) + " " +
				opts.Labels.Value + ": " + strconv.Itoa(e.Value),
		})
	}
	for _, e := range shakes {
		p.Rows = append(p.Rows, Row{
			Kind: e.Kind,
			At:   e.At,
			Text: opts.Labels.Shake + ": " + opts.Format(e.At),
		})
	}
	return p
}
