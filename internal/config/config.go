// Package config reads the environment-sourced runtime configuration.
// Every key has a default, so a bare environment runs the file-based
// demo setup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/wkarto/buzzline-04-karto/pkg/reduce"
)

const envPrefix = "BUZZLINE"

var ErrMalformedConfig = errors.New("config: malformed configuration")

// Config is the read-only runtime configuration of one run, established
// once at startup.
type Config struct {
	Variant    string
	SourceKind string

	Topic   string
	GroupID string
	Brokers []string

	Interval time.Duration

	WindowSize int
	// StallThreshold is nil when the environment leaves it unset; an
	// explicit zero is kept as zero.
	StallThreshold *float64
	TrendLookback  int
	HistoryLimit   int

	DataFile    string
	StorePath   string
	HTTPAddr    string
	ProfilePath string
}

// Load reads BUZZLINE_* environment variables over the defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("variant", string(reduce.AuthorCount))
	v.SetDefault("source", "file")
	v.SetDefault("topic", "unknown_topic")
	v.SetDefault("group_id", "default_group")
	v.SetDefault("brokers", "localhost:9092")
	v.SetDefault("interval_seconds", 1)
	v.SetDefault("window_size", 0)
	v.SetDefault("trend_lookback", 0)
	v.SetDefault("history_limit", 1000)
	v.SetDefault("data_file", "data/project_live.json")
	v.SetDefault("store_path", "")
	v.SetDefault("http_addr", "")
	v.SetDefault("profile", "")

	threshold, err := lookupThreshold()
	if err != nil {
		return Config{}, err
	}

	c := Config{
		Variant:        v.GetString("variant"),
		SourceKind:     v.GetString("source"),
		Topic:          v.GetString("topic"),
		GroupID:        v.GetString("group_id"),
		Brokers:        splitList(v.GetString("brokers")),
		Interval:       time.Duration(v.GetInt("interval_seconds")) * time.Second,
		WindowSize:     v.GetInt("window_size"),
		StallThreshold: threshold,
		TrendLookback:  v.GetInt("trend_lookback"),
		HistoryLimit:   v.GetInt("history_limit"),
		DataFile:       v.GetString("data_file"),
		StorePath:      v.GetString("store_path"),
		HTTPAddr:       v.GetString("http_addr"),
		ProfilePath:    v.GetString("profile"),
	}

	return c, c.validate()
}

// lookupThreshold reads the stall threshold straight from the
// environment so an explicit zero stays distinguishable from an unset
// key; the default is applied during description enrichment.
func lookupThreshold() (*float64, error) {
	raw, ok := os.LookupEnv(envPrefix + "_STALL_THRESHOLD")
	if !ok {
		return nil, nil
	}
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: stall threshold %q", ErrMalformedConfig, raw)
	}
	return &threshold, nil
}

func (c Config) validate() error {
	switch c.SourceKind {
	case "file", "kafka":
	default:
		return fmt.Errorf("%w: unknown source kind %q", ErrMalformedConfig, c.SourceKind)
	}
	if c.Interval < time.Second {
		return fmt.Errorf("%w: interval below one second", ErrMalformedConfig)
	}
	if c.StallThreshold != nil && *c.StallThreshold < 0 {
		return fmt.Errorf("%w: negative stall threshold", ErrMalformedConfig)
	}
	if c.WindowSize < 0 || c.TrendLookback < 0 || c.HistoryLimit < 1 {
		return fmt.Errorf("%w: invalid window sizing", ErrMalformedConfig)
	}
	if c.SourceKind == "kafka" && len(c.Brokers) == 0 {
		return fmt.Errorf("%w: no brokers configured", ErrMalformedConfig)
	}
	return nil
}

// Description resolves the reducer configuration, preferring an explicit
// YAML profile file when one is configured.
func (c Config) Description() (reduce.VariantDescription, error) {
	if c.ProfilePath != "" {
		profile, err := os.ReadFile(c.ProfilePath)
		if err != nil {
			return reduce.VariantDescription{}, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
		}
		return reduce.VariantDescriptionFromYML(profile)
	}

	return reduce.VariantDescriptionEnrichment(reduce.VariantDescription{
		Variant:        reduce.Variant(c.Variant),
		WindowSize:     c.WindowSize,
		StallThreshold: c.StallThreshold,
		TrendLookback:  c.TrendLookback,
		HistoryLimit:   c.HistoryLimit,
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
