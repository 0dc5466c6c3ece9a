package detector_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/wkarto/buzzline-04-karto/pkg/detector"
)

func TestDetector(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Detector Suite")
}

var _ = Describe("StallDetector", func() {

	Context("NewStallDetector", func() {
		It("rejects a negative threshold", func() {
			d, err := detector.NewStallDetector(5, -0.1)
			Expect(d).To(BeNil())
			Expect(err).To(MatchError(detector.ErrNegativeThreshold))
		})

		It("rejects an invalid capacity", func() {
			_, err := detector.NewStallDetector(0, 0.2)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("Observe", func() {
		It("stays stable while the window is filling", func() {
			d, _ := detector.NewStallDetector(5, 0.2)

			for i := 0; i < 4; i++ {
				Expect(d.Observe(225.0)).To(Equal(detector.Stable))
			}
		})

		It("stalls on a full window of identical readings", func() {
			d, _ := detector.NewStallDetector(5, 0.2)

			var state detector.State
			for i := 0; i < 5; i++ {
				state = d.Observe(225.0)
			}
			Expect(state).To(Equal(detector.Stalled))
			Expect(d.State()).To(Equal(detector.Stalled))
		})

		It("recovers once the range exceeds the threshold", func() {
			d, _ := detector.NewStallDetector(5, 0.2)

			for i := 0; i < 5; i++ {
				d.Observe(225.0)
			}
			Expect(d.Observe(230.0)).To(Equal(detector.Stable))
			Expect(d.Range()).To(BeNumerically("~", 5.0, 1e-9))
		})

		It("treats a range exactly at the threshold as a stall", func() {
			d, _ := detector.NewStallDetector(3, 0.25)

			d.Observe(225.0)
			d.Observe(225.25)
			Expect(d.Observe(225.0)).To(Equal(detector.Stalled))
		})
	})
})
