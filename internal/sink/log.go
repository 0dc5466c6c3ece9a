package sink

import (
	"go.uber.org/zap"

	"github.com/wkarto/buzzline-04-karto/pkg/reduce"
)

// LogSink renders each snapshot as a structured log line, the terminal
// stand-in for the live chart.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Accept(snapshot reduce.Snapshot) error {
	switch snapshot.Variant {
	case reduce.AuthorCount:
		zap.S().Infow("author counts",
			"seq", snapshot.Seq,
			"counts", snapshot.Counts)
	case reduce.TemperatureStall:
		zap.S().Infow("temperature reading",
			"seq", snapshot.Seq,
			"timestamp", snapshot.Latest.Timestamp,
			"temperature", snapshot.Latest.Value,
			"range", snapshot.Range,
			"stalled", snapshot.Stalled)
		if snapshot.Stalled {
			zap.S().Warnw("stall detected",
				"range", snapshot.Range,
				"window", snapshot.Window)
		}
	case reduce.SentimentTrend:
		zap.S().Infow("sentiment reading",
			"seq", snapshot.Seq,
			"timestamp", snapshot.Latest.Timestamp,
			"sentiment", snapshot.Latest.Value,
			"rolling_mean", snapshot.RollingMean)
	}
	return nil
}

func (s *LogSink) Close() error {
	return nil
}
