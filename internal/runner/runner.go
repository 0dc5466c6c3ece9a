// Package runner wires one source, one reducer, and any number of sinks
// into the single-threaded consumer loop.
package runner

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/wkarto/buzzline-04-karto/internal/sink"
	"github.com/wkarto/buzzline-04-karto/internal/source"
	"github.com/wkarto/buzzline-04-karto/pkg/reduce"
)

// Run pulls messages until the context is cancelled or the source fails.
// Recoverable reducer errors skip the message and continue; sink errors
// are logged and never stop the loop. Cancellation is the normal
// termination path and returns nil after draining the adapters.
func Run(ctx context.Context, src source.Source, red *reduce.Reducer, sinks ...sink.Sink) error {
	defer drain(src, sinks)

	zap.S().Infow("consumer loop started",
		"reducer", red.ID().String(),
		"variant", red.Variant())

	for {
		raw, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				zap.S().Infow("consumer interrupted", "reducer", red.ID().String())
				return nil
			}
			return err
		}

		snapshot, err := red.Reduce(raw)
		if err != nil {
			// malformed or incomplete message, already logged by the reducer
			continue
		}

		for _, s := range sinks {
			if err := s.Accept(snapshot); err != nil {
				zap.S().Errorw("sink failure",
					"reducer", red.ID().String(),
					"seq", snapshot.Seq,
					"error", err)
			}
		}
	}
}

func drain(src source.Source, sinks []sink.Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			zap.S().Errorw("error closing sink", "error", err)
		}
	}
	if err := src.Close(); err != nil {
		zap.S().Errorw("error closing source", "error", err)
	}
}
