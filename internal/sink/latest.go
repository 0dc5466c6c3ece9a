package sink

import (
	"sync"

	"github.com/wkarto/buzzline-04-karto/pkg/reduce"
)

// LatestSink retains the most recent snapshot for read access from
// outside the consumer loop, e.g. the REST API.
type LatestSink struct {
	mu     sync.RWMutex
	latest reduce.Snapshot
	seen   bool
}

func NewLatestSink() *LatestSink {
	return &LatestSink{}
}

func (s *LatestSink) Accept(snapshot reduce.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = snapshot
	s.seen = true
	return nil
}

// Latest returns the most recent snapshot and whether one exists yet.
func (s *LatestSink) Latest() (reduce.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.latest, s.seen
}

func (s *LatestSink) Close() error {
	return nil
}
