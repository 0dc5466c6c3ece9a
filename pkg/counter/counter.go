// Package counter provides an insertion-ordered key counter for
// count-by-key aggregations.
package counter

// KeyCount is one key with its current count.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// KeyCounter counts occurrences per key. Iteration order of Counts is the
// order in which keys were first seen, which keeps chart rendering
// deterministic across runs.
type KeyCounter struct {
	order  []string
	counts map[string]int
}

func NewKeyCounter() *KeyCounter {
	return &KeyCounter{
		counts: make(map[string]int),
	}
}

// Increment adds one to the count of key, starting from zero for keys not
// seen before.
func (c *KeyCounter) Increment(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Count returns the current count for key; unknown keys count zero.
func (c *KeyCounter) Count(key string) int {
	return c.counts[key]
}

func (c *KeyCounter) Len() int {
	return len(c.order)
}

// Counts returns a snapshot of all key/count pairs in first-seen order.
func (c *KeyCounter) Counts() []KeyCount {
	out := make([]KeyCount, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, KeyCount{Key: key, Count: c.counts[key]})
	}
	return out
}
