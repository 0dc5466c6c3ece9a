// Package source supplies the raw message sequence a consumer run reads
// from, either by tailing an append-only file or by subscribing to a
// Kafka topic.
package source

import (
	"context"
)

// Source yields one raw record per call. Next blocks until a record is
// available, the context is cancelled, or the source fails permanently.
// A Source is restartable at process start only, not mid-stream.
type Source interface {
	Next(ctx context.Context) ([]byte, error)
	Close() error
}
