// Package detector implements threshold-based stall detection over a
// rolling window of samples.
package detector

import (
	"errors"
	"fmt"

	"github.com/wkarto/buzzline-04-karto/pkg/window"
)

// State of the detector after the most recent observation.
type State int

const (
	// Stable is reported while the window is not yet full or while the
	// recent sample range exceeds the threshold.
	Stable State = iota
	// Stalled is reported when a full window varies by at most the
	// configured threshold.
	Stalled
)

func (s State) String() string {
	if s == Stalled {
		return "stalled"
	}
	return "stable"
}

var ErrNegativeThreshold = errors.New("detector: threshold must not be negative")

// StallDetector watches a rolling window of samples and flags a stall
// when a full window plateaus within the threshold. While the window is
// filling up it never reports a stall, so there are no false positives
// on insufficient data.
type StallDetector struct {
	window    *window.Window
	threshold float64
	state     State
}

func NewStallDetector(capacity int, threshold float64) (*StallDetector, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: %f", ErrNegativeThreshold, threshold)
	}
	w, err := window.New(capacity)
	if err != nil {
		return nil, err
	}
	return &StallDetector{
		window:    w,
		threshold: threshold,
	}, nil
}

// Observe appends v to the rolling window and re-evaluates the state.
// The state is recomputed on every call since the window content changes
// with each sample.
func (d *StallDetector) Observe(v float64) State {
	d.window.Append(v)

	if !d.window.Full() {
		d.state = Stable
		return d.state
	}

	r, _ := d.window.Range()
	if r <= d.threshold {
		d.state = Stalled
	} else {
		d.state = Stable
	}
	return d.state
}

func (d *StallDetector) State() State {
	return d.state
}

// Range returns the current max-min spread of the window; zero while the
// window is empty.
func (d *StallDetector) Range() float64 {
	r, err := d.window.Range()
	if err != nil {
		return 0
	}
	return r
}

// Values exposes the retained window samples oldest to newest.
func (d *StallDetector) Values() []float64 {
	return d.window.Values()
}

func (d *StallDetector) Threshold() float64 {
	return d.threshold
}
