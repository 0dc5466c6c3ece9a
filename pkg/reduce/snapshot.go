package reduce

import (
	"github.com/wkarto/buzzline-04-karto/pkg/counter"
	"github.com/wkarto/buzzline-04-karto/pkg/detector"
)

// Point is one (timestamp, value) pair retained for rendering.
type Point struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Snapshot is an immutable view of the aggregator state after one
// processed message. All slices are copies owned by the snapshot.
type Snapshot struct {
	Variant Variant `json:"variant"`
	// Seq counts successfully processed messages for this run.
	Seq uint64 `json:"seq"`

	// Author-count variant.
	Counts []counter.KeyCount `json:"counts,omitempty"`

	// Temperature-stall variant.
	Window  []float64      `json:"window,omitempty"`
	Range   float64        `json:"range,omitempty"`
	State   detector.State `json:"-"`
	Stalled bool           `json:"stalled,omitempty"`

	// Sentiment-trend variant.
	RollingMean float64 `json:"rolling_mean,omitempty"`

	Latest  Point   `json:"latest"`
	History []Point `json:"history,omitempty"`
}
