// Package reduce drives the per-message aggregation cycle: decode one raw
// record, route it to the active variant's aggregate, and emit an
// immutable snapshot of the new state.
package reduce

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wkarto/buzzline-04-karto/pkg/counter"
	"github.com/wkarto/buzzline-04-karto/pkg/detector"
	"github.com/wkarto/buzzline-04-karto/pkg/events"
	"github.com/wkarto/buzzline-04-karto/pkg/window"
)

// Reducer owns the aggregator state of one consumer run. It is
// constructed once per run and driven by a single reader loop; it is not
// safe for concurrent use.
type Reducer struct {
	id   uuid.UUID
	desc VariantDescription

	authors *counter.KeyCounter
	stall   *detector.StallDetector
	trend   *window.Window
	history []Point
	seq     uint64
}

func NewReducer(desc VariantDescription) (*Reducer, error) {
	d, err := VariantDescriptionEnrichment(desc)
	if err != nil {
		return nil, err
	}

	r := &Reducer{
		id:   uuid.New(),
		desc: d,
	}

	switch d.Variant {
	case AuthorCount:
		r.authors = counter.NewKeyCounter()
	case TemperatureStall:
		r.stall, err = detector.NewStallDetector(d.WindowSize, *d.StallThreshold)
		if err != nil {
			return nil, err
		}
	case SentimentTrend:
		r.trend, err = window.New(d.TrendLookback)
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Reducer) ID() uuid.UUID {
	return r.id
}

func (r *Reducer) Variant() Variant {
	return r.desc.Variant
}

// Reduce processes one raw record. On a malformed payload or a record
// missing the variant's required field it returns a classified error and
// leaves all aggregator state untouched; both conditions are recoverable
// and the caller continues with the next message.
func (r *Reducer) Reduce(raw []byte) (Snapshot, error) {
	event, err := events.DecodeMessage(raw)
	if err != nil {
		zap.S().Warnw("dropping malformed message",
			"reducer", r.id.String(),
			"error", err)
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	msg := event.GetContent()

	switch r.desc.Variant {
	case AuthorCount:
		return r.reduceAuthor(msg), nil
	case TemperatureStall:
		return r.reduceTemperature(msg)
	default:
		return r.reduceSentiment(msg)
	}
}

// A missing timestamp maps to a constant placeholder, never the wall
// clock, so replaying the same sequence yields the same snapshots.
func timestampOrUnknown(msg events.BuzzMessage) string {
	if msg.Timestamp == "" {
		return "unknown"
	}
	return msg.Timestamp
}

func (r *Reducer) reduceAuthor(msg events.BuzzMessage) Snapshot {
	author := msg.Author
	if author == "" {
		author = "unknown"
	}
	r.authors.Increment(author)
	r.seq++

	return Snapshot{
		Variant: AuthorCount,
		Seq:     r.seq,
		Counts:  r.authors.Counts(),
		Latest:  Point{Timestamp: timestampOrUnknown(msg), Value: float64(r.authors.Count(author))},
	}
}

// reduceTemperature requires both reading and timestamp; a record missing
// either one is dropped whole.
func (r *Reducer) reduceTemperature(msg events.BuzzMessage) (Snapshot, error) {
	if msg.Temperature == nil || msg.Timestamp == "" {
		zap.S().Warnw("dropping incomplete temperature reading",
			"reducer", r.id.String())
		return Snapshot{}, fmt.Errorf("%w: temperature and timestamp", ErrMissingField)
	}

	temp := *msg.Temperature
	state := r.stall.Observe(temp)
	latest := Point{Timestamp: msg.Timestamp, Value: temp}
	r.appendHistory(latest)
	r.seq++

	return Snapshot{
		Variant: TemperatureStall,
		Seq:     r.seq,
		Window:  r.stall.Values(),
		Range:   r.stall.Range(),
		State:   state,
		Stalled: state == detector.Stalled,
		Latest:  latest,
		History: r.copyHistory(),
	}, nil
}

func (r *Reducer) reduceSentiment(msg events.BuzzMessage) (Snapshot, error) {
	if msg.Sentiment == nil {
		zap.S().Warnw("dropping message without sentiment",
			"reducer", r.id.String())
		return Snapshot{}, fmt.Errorf("%w: sentiment", ErrMissingField)
	}

	sentiment := *msg.Sentiment
	r.trend.Append(sentiment)
	mean, _ := r.trend.Mean()
	latest := Point{Timestamp: timestampOrUnknown(msg), Value: sentiment}
	r.appendHistory(latest)
	r.seq++

	return Snapshot{
		Variant:     SentimentTrend,
		Seq:         r.seq,
		Window:      r.trend.Values(),
		RollingMean: mean,
		Latest:      latest,
		History:     r.copyHistory(),
	}, nil
}

// appendHistory keeps the render history bounded; once the limit is
// reached the oldest point is evicted.
func (r *Reducer) appendHistory(p Point) {
	if len(r.history) == r.desc.HistoryLimit {
		r.history = r.history[1:]
	}
	r.history = append(r.history, p)
}

func (r *Reducer) copyHistory() []Point {
	out := make([]Point, len(r.history))
	copy(out, r.history)
	return out
}
