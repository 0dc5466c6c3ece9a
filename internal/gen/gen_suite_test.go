package gen_test

import (
	"math/rand"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/wkarto/buzzline-04-karto/internal/gen"
)

func TestGen(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Gen Suite")
}

var fixedClock = func() time.Time {
	return time.Date(2025, 1, 29, 14, 35, 20, 0, time.UTC)
}

var _ = Describe("BuzzGenerator", func() {

	It("produces the same sequence for the same seed", func() {
		g1 := gen.NewBuzzGenerator(rand.New(rand.NewSource(42))).WithClock(fixedClock)
		g2 := gen.NewBuzzGenerator(rand.New(rand.NewSource(42))).WithClock(fixedClock)

		for i := 0; i < 20; i++ {
			Expect(g1.Next()).To(Equal(g2.Next()))
		}
	})

	It("produces complete buzz messages", func() {
		g := gen.NewBuzzGenerator(rand.New(rand.NewSource(1))).WithClock(fixedClock)

		m := g.Next()
		Expect(m.Author).To(Not(BeEmpty()))
		Expect(m.Message).To(Not(BeEmpty()))
		Expect(m.Timestamp).To(Equal("2025-01-29 14:35:20"))
		Expect(m.Category).To(Not(BeEmpty()))
		Expect(m.KeywordMentioned).To(Not(BeEmpty()))
		Expect(m.Sentiment).To(Not(BeNil()))
		Expect(*m.Sentiment).To(BeNumerically(">=", 0))
		Expect(*m.Sentiment).To(BeNumerically("<=", 1))
		Expect(m.MessageLength).To(Equal(len(m.Message)))
	})
})

var _ = Describe("SmokerGenerator", func() {

	It("keeps readings within the plausible smoker band", func() {
		g := gen.NewSmokerGenerator(rand.New(rand.NewSource(7))).WithClock(fixedClock)

		for i := 0; i < 500; i++ {
			m := g.Next()
			Expect(m.Temperature).To(Not(BeNil()))
			Expect(*m.Temperature).To(BeNumerically(">=", 200))
			Expect(*m.Temperature).To(BeNumerically("<=", 300))
		}
	})

	It("moves in small steps most of the time", func() {
		g := gen.NewSmokerGenerator(rand.New(rand.NewSource(7)))

		previous := *g.Next().Temperature
		small := 0
		for i := 0; i < 100; i++ {
			current := *g.Next().Temperature
			if diff := current - previous; diff < 0.2 && diff > -0.2 {
				small++
			}
			previous = current
		}
		Expect(small).To(BeNumerically(">", 80))
	})
})
