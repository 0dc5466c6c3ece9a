// Package gen produces synthetic buzz and smoker messages for the
// producer binaries. Randomness is injected so tests can replay a fixed
// sequence.
package gen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/wkarto/buzzline-04-karto/pkg/events"
)

var (
	authors = []string{"Alice", "Bob", "Charlie", "Eve"}

	actions = []string{"found", "saw", "tried", "shared", "loved", "discussed"}

	adjectives = []string{"amazing", "funny", "boring", "exciting", "weird"}

	// keyword to chart category, insertion order mirrors the producer's
	// keyword table
	keywordCategories = []struct {
		Keyword  string
		Category string
	}{
		{"meme", "humor"},
		{"Python", "tech"},
		{"JavaScript", "tech"},
		{"recipe", "food"},
		{"travel", "travel"},
		{"movie", "entertainment"},
		{"game", "gaming"},
	}
)

const timestampLayout = "2006-01-02 15:04:05"

// BuzzGenerator emits random social "buzz" messages with an author,
// sentiment score, and keyword category.
type BuzzGenerator struct {
	rng *rand.Rand
	now func() time.Time
}

func NewBuzzGenerator(rng *rand.Rand) *BuzzGenerator {
	return &BuzzGenerator{
		rng: rng,
		now: time.Now,
	}
}

// WithClock replaces the timestamp source, for deterministic tests.
func (g *BuzzGenerator) WithClock(now func() time.Time) *BuzzGenerator {
	g.now = now
	return g
}

func (g *BuzzGenerator) Next() events.BuzzMessage {
	kc := keywordCategories[g.rng.Intn(len(keywordCategories))]
	text := fmt.Sprintf("I just %s a %s! It was %s.",
		actions[g.rng.Intn(len(actions))],
		kc.Keyword,
		adjectives[g.rng.Intn(len(adjectives))])

	sentiment := float64(g.rng.Intn(101)) / 100.0

	return events.BuzzMessage{
		Message:          text,
		Author:           authors[g.rng.Intn(len(authors))],
		Timestamp:        g.now().Format(timestampLayout),
		Category:         kc.Category,
		Sentiment:        &sentiment,
		KeywordMentioned: kc.Keyword,
		MessageLength:    len(text),
	}
}

// SmokerGenerator emits temperature readings as a bounded random walk
// around a barbecue-smoker setpoint, so stall plateaus actually occur.
type SmokerGenerator struct {
	rng     *rand.Rand
	now     func() time.Time
	current float64
}

func NewSmokerGenerator(rng *rand.Rand) *SmokerGenerator {
	return &SmokerGenerator{
		rng:     rng,
		now:     time.Now,
		current: 225.0,
	}
}

func (g *SmokerGenerator) WithClock(now func() time.Time) *SmokerGenerator {
	g.now = now
	return g
}

func (g *SmokerGenerator) Next() events.BuzzMessage {
	// small steps most of the time, an occasional jump out of a plateau
	step := (g.rng.Float64() - 0.5) * 0.2
	if g.rng.Intn(20) == 0 {
		step = (g.rng.Float64() - 0.5) * 10.0
	}
	g.current += step
	if g.current < 200 {
		g.current = 200
	}
	if g.current > 300 {
		g.current = 300
	}

	temp := g.current
	return events.BuzzMessage{
		Timestamp:   g.now().UTC().Format(time.RFC3339),
		Temperature: &temp,
	}
}
