package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// BuzzMessage is one decoded record from a producer. All fields are
// optional on the wire; which ones are required depends on the consumer
// variant and is enforced by the reducer, not here.
type BuzzMessage struct {
	Message          string   `json:"message,omitempty"`
	Author           string   `json:"author,omitempty"`
	Timestamp        string   `json:"timestamp,omitempty"`
	Category         string   `json:"category,omitempty"`
	Sentiment        *float64 `json:"sentiment,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	KeywordMentioned string   `json:"keyword_mentioned,omitempty"`
	MessageLength    int      `json:"message_length,omitempty"`
}

var ErrNotAnObject = errors.New("events: message is not a JSON object")

// DecodeMessage parses a single wire record into a BuzzMessage wrapped in
// an Event that carries the arrival time. Unknown fields are ignored.
// Numeric fields may arrive as JSON numbers or as numeric strings; a field
// that is present but not coercible stays unset.
func DecodeMessage(raw []byte) (Event[BuzzMessage], error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("events: cannot decode message: %w", err)
	}
	if fields == nil {
		return nil, ErrNotAnObject
	}

	var m BuzzMessage
	m.Message = asString(fields["message"])
	m.Author = asString(fields["author"])
	m.Timestamp = asTimestamp(fields["timestamp"])
	m.Category = asString(fields["category"])
	m.KeywordMentioned = asString(fields["keyword_mentioned"])
	m.Sentiment = asFloat(fields["sentiment"])
	m.Temperature = asFloat(fields["temperature"])
	if l := asFloat(fields["message_length"]); l != nil {
		m.MessageLength = int(*l)
	}

	return NewEvent(m), nil
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// asTimestamp keeps the timestamp an opaque ordering key; numeric
// timestamps are rendered back to their decimal form.
func asTimestamp(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func asFloat(v interface{}) *float64 {
	switch f := v.(type) {
	case float64:
		return &f
	case string:
		if parsed, err := strconv.ParseFloat(f, 64); err == nil {
			return &parsed
		}
	}
	return nil
}
