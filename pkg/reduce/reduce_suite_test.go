package reduce_test

import (
	"fmt"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/wkarto/buzzline-04-karto/pkg/counter"
	"github.com/wkarto/buzzline-04-karto/pkg/reduce"
)

func TestReduce(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Reduce Suite")
}

var _ = Describe("VariantDescription", func() {

	Context("FromJSON", func() {
		It("fills defaults for omitted fields", func() {
			d, err := reduce.VariantDescriptionFromJSON([]byte(`{"variant":"temperature_stall"}`))
			Expect(err).To(BeNil())
			Expect(d.WindowSize).To(Equal(5))
			Expect(*d.StallThreshold).To(BeNumerically("~", 0.2, 1e-9))
			Expect(d.HistoryLimit).To(Equal(1000))
		})

		It("keeps an explicit zero threshold instead of the default", func() {
			d, err := reduce.VariantDescriptionFromJSON([]byte(`{"variant":"temperature_stall","stall_threshold":0}`))
			Expect(err).To(BeNil())
			Expect(*d.StallThreshold).To(BeZero())
		})

		It("rejects an unknown variant", func() {
			_, err := reduce.VariantDescriptionFromJSON([]byte(`{"variant":"word_count"}`))
			Expect(err).To(MatchError(reduce.ErrUnknownVariant))
		})
	})

	Context("FromYML", func() {
		It("parses an explicit profile", func() {
			profile := []byte("variant: sentiment_trend\ntrend_lookback: 20\nhistory_limit: 50\n")
			d, err := reduce.VariantDescriptionFromYML(profile)
			Expect(err).To(BeNil())
			Expect(d.Variant).To(Equal(reduce.SentimentTrend))
			Expect(d.TrendLookback).To(Equal(20))
			Expect(d.HistoryLimit).To(Equal(50))
		})

		It("rejects a negative threshold", func() {
			_, err := reduce.VariantDescriptionFromYML([]byte("variant: temperature_stall\nstall_threshold: -1\n"))
			Expect(err).To(MatchError(reduce.ErrBadDescription))
		})
	})
})

var _ = Describe("Reducer", func() {

	Context("author-count variant", func() {
		var r *reduce.Reducer

		BeforeEach(func() {
			var err error
			r, err = reduce.NewReducer(reduce.MakeVariantDescription(reduce.AuthorCount))
			Expect(err).To(BeNil())
		})

		It("counts authors in first-seen order", func() {
			var snap reduce.Snapshot
			for _, author := range []string{"Eve", "Bob", "Eve"} {
				var err error
				snap, err = r.Reduce([]byte(fmt.Sprintf(`{"message":"hi","author":%q,"timestamp":"t"}`, author)))
				Expect(err).To(BeNil())
			}

			Expect(snap.Counts).To(Equal([]counter.KeyCount{
				{Key: "Eve", Count: 2},
				{Key: "Bob", Count: 1},
			}))
			Expect(snap.Seq).To(Equal(uint64(3)))
		})

		It("attributes authorless messages to unknown", func() {
			snap, err := r.Reduce([]byte(`{"message":"anon","timestamp":"t"}`))
			Expect(err).To(BeNil())
			Expect(snap.Counts).To(Equal([]counter.KeyCount{{Key: "unknown", Count: 1}}))
		})

		It("drops malformed payloads without touching state", func() {
			_, err := r.Reduce([]byte(`{"author":"Eve","timestamp":"t"}`))
			Expect(err).To(BeNil())

			_, err = r.Reduce([]byte(`{not valid`))
			Expect(err).To(MatchError(reduce.ErrMalformedMessage))

			snap, err := r.Reduce([]byte(`{"author":"Eve","timestamp":"t"}`))
			Expect(err).To(BeNil())
			Expect(snap.Counts).To(Equal([]counter.KeyCount{{Key: "Eve", Count: 2}}))
			Expect(snap.Seq).To(Equal(uint64(2)))
		})
	})

	Context("temperature-stall variant", func() {
		var r *reduce.Reducer

		BeforeEach(func() {
			var err error
			threshold := 0.2
			r, err = reduce.NewReducer(reduce.VariantDescription{
				Variant:        reduce.TemperatureStall,
				WindowSize:     5,
				StallThreshold: &threshold,
			})
			Expect(err).To(BeNil())
		})

		reading := func(temp float64) []byte {
			return []byte(fmt.Sprintf(`{"timestamp":"2025-01-11T18:15:00Z","temperature":%v}`, temp))
		}

		It("reports a stall after a full flat window and recovers", func() {
			var snap reduce.Snapshot
			for i := 0; i < 5; i++ {
				var err error
				snap, err = r.Reduce(reading(225.0))
				Expect(err).To(BeNil())
			}
			Expect(snap.Stalled).To(BeTrue())
			Expect(snap.Window).To(HaveLen(5))

			snap, err := r.Reduce(reading(230.0))
			Expect(err).To(BeNil())
			Expect(snap.Stalled).To(BeFalse())
			Expect(snap.Range).To(BeNumerically("~", 5.0, 1e-9))
		})

		It("stays stable while the window is filling", func() {
			for i := 0; i < 4; i++ {
				snap, err := r.Reduce(reading(225.0))
				Expect(err).To(BeNil())
				Expect(snap.Stalled).To(BeFalse())
			}
		})

		It("coerces string-encoded temperatures", func() {
			snap, err := r.Reduce([]byte(`{"timestamp":"t","temperature":"224.5"}`))
			Expect(err).To(BeNil())
			Expect(snap.Latest.Value).To(BeNumerically("~", 224.5, 1e-9))
		})

		It("drops readings without a temperature", func() {
			_, err := r.Reduce(reading(225.0))
			Expect(err).To(BeNil())

			_, err = r.Reduce([]byte(`{"timestamp":"t"}`))
			Expect(err).To(MatchError(reduce.ErrMissingField))

			snap, err := r.Reduce(reading(225.0))
			Expect(err).To(BeNil())
			Expect(snap.Seq).To(Equal(uint64(2)))
			Expect(snap.Window).To(HaveLen(2))
		})

		It("drops readings without a timestamp", func() {
			_, err := r.Reduce([]byte(`{"temperature":225.0}`))
			Expect(err).To(MatchError(reduce.ErrMissingField))

			snap, err := r.Reduce(reading(225.0))
			Expect(err).To(BeNil())
			Expect(snap.Seq).To(Equal(uint64(1)))
			Expect(snap.Window).To(HaveLen(1))
		})

		It("treats only exact plateaus as stalls when the threshold is zero", func() {
			zero := 0.0
			flat, err := reduce.NewReducer(reduce.VariantDescription{
				Variant:        reduce.TemperatureStall,
				WindowSize:     3,
				StallThreshold: &zero,
			})
			Expect(err).To(BeNil())

			var snap reduce.Snapshot
			for i := 0; i < 3; i++ {
				snap, err = flat.Reduce(reading(225.0))
				Expect(err).To(BeNil())
			}
			Expect(snap.Stalled).To(BeTrue())

			snap, err = flat.Reduce(reading(225.5))
			Expect(err).To(BeNil())
			Expect(snap.Stalled).To(BeFalse())
		})
	})

	Context("sentiment-trend variant", func() {
		var r *reduce.Reducer

		BeforeEach(func() {
			var err error
			r, err = reduce.NewReducer(reduce.VariantDescription{
				Variant:       reduce.SentimentTrend,
				TrendLookback: 3,
				HistoryLimit:  4,
			})
			Expect(err).To(BeNil())
		})

		buzz := func(ts string, sentiment float64) []byte {
			return []byte(fmt.Sprintf(`{"timestamp":%q,"sentiment":%v}`, ts, sentiment))
		}

		It("tracks the rolling mean over the lookback", func() {
			r.Reduce(buzz("t1", 0.2))
			r.Reduce(buzz("t2", 0.4))
			snap, err := r.Reduce(buzz("t3", 0.6))
			Expect(err).To(BeNil())
			Expect(snap.RollingMean).To(BeNumerically("~", 0.4, 1e-9))

			// lookback 3: the 0.2 falls out of the window
			snap, err = r.Reduce(buzz("t4", 0.8))
			Expect(err).To(BeNil())
			Expect(snap.RollingMean).To(BeNumerically("~", 0.6, 1e-9))
		})

		It("bounds the render history at the configured limit", func() {
			var snap reduce.Snapshot
			for i := 0; i < 10; i++ {
				snap, _ = r.Reduce(buzz(fmt.Sprintf("t%d", i), 0.5))
			}
			Expect(snap.History).To(HaveLen(4))
			Expect(snap.History[0].Timestamp).To(Equal("t6"))
			Expect(snap.History[3].Timestamp).To(Equal("t9"))
		})

		It("stamps messages without a timestamp with the constant placeholder", func() {
			snap, err := r.Reduce([]byte(`{"sentiment":0.5}`))
			Expect(err).To(BeNil())
			Expect(snap.Latest.Timestamp).To(Equal("unknown"))
		})

		It("drops messages without a sentiment", func() {
			_, err := r.Reduce([]byte(`{"timestamp":"t","author":"Eve"}`))
			Expect(err).To(MatchError(reduce.ErrMissingField))

			snap, err := r.Reduce(buzz("t1", 0.5))
			Expect(err).To(BeNil())
			Expect(snap.Seq).To(Equal(uint64(1)))
		})
	})

	Context("determinism", func() {
		It("produces identical final snapshots for a replayed sequence", func() {
			sequence := [][]byte{
				[]byte(`{"timestamp":"t1","sentiment":0.1}`),
				[]byte(`{not valid`),
				[]byte(`{"timestamp":"t2","sentiment":0.9}`),
				[]byte(`{"timestamp":"t3","author":"Eve"}`),
				[]byte(`{"sentiment":0.7}`),
				[]byte(`{"timestamp":"t4","sentiment":0.5}`),
			}

			run := func() reduce.Snapshot {
				r, err := reduce.NewReducer(reduce.MakeVariantDescription(reduce.SentimentTrend))
				Expect(err).To(BeNil())
				var last reduce.Snapshot
				for _, raw := range sequence {
					if snap, err := r.Reduce(raw); err == nil {
						last = snap
					}
				}
				return last
			}

			Expect(run()).To(Equal(run()))
		})
	})
})
