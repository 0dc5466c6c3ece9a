package counter_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/wkarto/buzzline-04-karto/pkg/counter"
)

func TestCounter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Counter Suite")
}

var _ = Describe("KeyCounter", func() {

	Context("Increment", func() {
		It("counts repeated keys and keeps first-seen order", func() {
			c := counter.NewKeyCounter()
			for _, author := range []string{"Eve", "Bob", "Eve"} {
				c.Increment(author)
			}

			Expect(c.Counts()).To(Equal([]counter.KeyCount{
				{Key: "Eve", Count: 2},
				{Key: "Bob", Count: 1},
			}))
		})

		It("defaults unknown keys to zero", func() {
			c := counter.NewKeyCounter()
			Expect(c.Count("nobody")).To(Equal(0))
			Expect(c.Len()).To(Equal(0))
		})
	})

	Context("Counts", func() {
		It("returns a copy that later increments do not mutate", func() {
			c := counter.NewKeyCounter()
			c.Increment("Alice")

			snapshot := c.Counts()
			c.Increment("Alice")

			Expect(snapshot).To(Equal([]counter.KeyCount{{Key: "Alice", Count: 1}}))
			Expect(c.Count("Alice")).To(Equal(2))
		})
	})
})
