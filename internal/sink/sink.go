// Package sink renders or persists aggregator snapshots. A failing sink
// is a boundary condition: it is logged where it happens and never
// corrupts or unwinds the aggregator state feeding it.
package sink

import (
	"github.com/wkarto/buzzline-04-karto/pkg/reduce"
)

// Sink consumes one snapshot per processed message.
type Sink interface {
	Accept(snapshot reduce.Snapshot) error
	Close() error
}
