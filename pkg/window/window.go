// Package window provides a fixed-capacity FIFO buffer over the most
// recent numeric samples of a stream, together with the aggregate
// functions computed over it.
package window

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyWindow     = errors.New("window: empty window")
	ErrInvalidCapacity = errors.New("window: capacity must be at least 1")
)

// Window retains the last `capacity` float64 samples in append order.
// Appending to a full window evicts the oldest sample. A Window has a
// single writer and is not safe for concurrent use.
type Window struct {
	samples []float64
	start   int
	size    int
}

func New(capacity int) (*Window, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Window{
		samples: make([]float64, capacity),
	}, nil
}

// Append adds v as the newest sample, evicting the oldest one first when
// the window is at capacity.
func (w *Window) Append(v float64) {
	if w.size < len(w.samples) {
		w.samples[(w.start+w.size)%len(w.samples)] = v
		w.size++
		return
	}
	w.samples[w.start] = v
	w.start = (w.start + 1) % len(w.samples)
}

// Values returns the retained samples oldest to newest.
func (w *Window) Values() []float64 {
	out := make([]float64, w.size)
	for i := 0; i < w.size; i++ {
		out[i] = w.samples[(w.start+i)%len(w.samples)]
	}
	return out
}

func (w *Window) Len() int {
	return w.size
}

func (w *Window) Cap() int {
	return len(w.samples)
}

func (w *Window) Full() bool {
	return w.size == len(w.samples)
}

// Range returns max minus min over the retained samples.
func (w *Window) Range() (float64, error) {
	if w.size == 0 {
		return 0, ErrEmptyWindow
	}
	minV := w.samples[w.start]
	maxV := minV
	for i := 1; i < w.size; i++ {
		v := w.samples[(w.start+i)%len(w.samples)]
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return maxV - minV, nil
}

// Mean returns the arithmetic mean over all retained samples.
func (w *Window) Mean() (float64, error) {
	return w.TailMean(w.size)
}

// TailMean returns the arithmetic mean over the last k samples. A k
// larger than the current length is clamped to the length.
func (w *Window) TailMean(k int) (float64, error) {
	if w.size == 0 {
		return 0, ErrEmptyWindow
	}
	if k > w.size {
		k = w.size
	}
	if k < 1 {
		k = 1
	}
	sum := 0.0
	for i := w.size - k; i < w.size; i++ {
		sum += w.samples[(w.start+i)%len(w.samples)]
	}
	return sum / float64(k), nil
}
