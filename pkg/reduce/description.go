package reduce

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Variant selects which aggregation a reducer runs.
type Variant string

const (
	// AuthorCount counts messages per author.
	AuthorCount Variant = "author_count"
	// TemperatureStall watches temperature readings for a plateau.
	TemperatureStall Variant = "temperature_stall"
	// SentimentTrend tracks the rolling average sentiment.
	SentimentTrend Variant = "sentiment_trend"
)

const (
	defaultStallWindowSize = 5
	defaultTrendLookback   = 10
	defaultStallThreshold  = 0.2
	defaultHistoryLimit    = 1000
)

var (
	ErrUnknownVariant = errors.New("reduce: unknown variant")
	ErrBadDescription = errors.New("reduce: invalid variant description")
)

// VariantDescription details the reducer configuration for one run.
// Zero values are filled with per-variant defaults on enrichment.
type VariantDescription struct {
	Variant Variant `json:"variant" yaml:"variant"`
	// WindowSize is the stall-detection window capacity.
	WindowSize int `json:"window_size" yaml:"window_size"`
	// StallThreshold is the max range a full window may span while
	// still counting as a stall. Nil means the default; an explicit
	// zero counts only exact plateaus.
	StallThreshold *float64 `json:"stall_threshold,omitempty" yaml:"stall_threshold,omitempty"`
	// TrendLookback is the rolling-average lookback; it may differ from
	// the detection window size.
	TrendLookback int `json:"trend_lookback" yaml:"trend_lookback"`
	// HistoryLimit caps the retained render history.
	HistoryLimit int `json:"history_limit" yaml:"history_limit"`
}

func MakeVariantDescription(v Variant) VariantDescription {
	d, _ := VariantDescriptionEnrichment(VariantDescription{Variant: v})
	return d
}

// VariantDescriptionEnrichment fills unset fields with the per-variant
// defaults and validates the result.
func VariantDescriptionEnrichment(d VariantDescription) (VariantDescription, error) {
	switch d.Variant {
	case AuthorCount, TemperatureStall, SentimentTrend:
	default:
		return VariantDescription{}, fmt.Errorf("%w: %q", ErrUnknownVariant, d.Variant)
	}

	if d.WindowSize == 0 {
		d.WindowSize = defaultStallWindowSize
	}
	if d.TrendLookback == 0 {
		d.TrendLookback = defaultTrendLookback
	}
	if d.StallThreshold == nil {
		threshold := defaultStallThreshold
		d.StallThreshold = &threshold
	}
	if d.HistoryLimit == 0 {
		d.HistoryLimit = defaultHistoryLimit
	}

	if d.WindowSize < 1 || d.TrendLookback < 1 || d.HistoryLimit < 1 {
		return VariantDescription{}, fmt.Errorf("%w: sizes must be at least 1", ErrBadDescription)
	}
	if *d.StallThreshold < 0 {
		return VariantDescription{}, fmt.Errorf("%w: negative stall threshold", ErrBadDescription)
	}

	return d, nil
}

func VariantDescriptionFromJSON(b []byte) (VariantDescription, error) {
	var d VariantDescription
	if err := json.Unmarshal(b, &d); err != nil {
		return VariantDescription{}, err
	}
	return VariantDescriptionEnrichment(d)
}

func VariantDescriptionFromYML(b []byte) (VariantDescription, error) {
	var d VariantDescription
	if err := yaml.Unmarshal(b, &d); err != nil {
		return VariantDescription{}, err
	}
	return VariantDescriptionEnrichment(d)
}
