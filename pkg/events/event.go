package events

import (
	"time"
)

// Event interface for arbitrary events with any content of type T
type Event[T any] interface {
	GetStamp() TimeStamp
	GetContent() T
}

// TimeStamp marks the arrival of an event at the consumer.
type TimeStamp struct {
	Arrival time.Time `json:"arrival"`
}

type TemporalEvent[T any] struct {
	Stamp   TimeStamp
	Content T
}

func NewEvent[T any](content T) Event[T] {
	return &TemporalEvent[T]{
		Stamp:   TimeStamp{Arrival: time.Now()},
		Content: content,
	}
}

func NewEventAt[T any](content T, at time.Time) Event[T] {
	return &TemporalEvent[T]{
		Stamp:   TimeStamp{Arrival: at},
		Content: content,
	}
}

func (e *TemporalEvent[T]) GetStamp() TimeStamp {
	return e.Stamp
}

func (e *TemporalEvent[T]) GetContent() T {
	return e.Content
}
