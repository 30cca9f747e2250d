package bench_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fifobench/bench"
	"github.com/sarchlab/fifobench/fifo"
)

// writeObs builds an observation of an accepted or blocked write.
func writeObs(v byte, full bool) *bench.Request {
	return &bench.Request{
		Kind:        bench.Write,
		WriteEnable: true,
		InputData:   v,
		Full:        full,
	}
}

// readObs builds an observation of a read that returned v.
func readObs(v byte, empty bool) *bench.Request {
	return &bench.Request{
		Kind:       bench.Read,
		ReadEnable: true,
		OutputData: v,
		Empty:      empty,
	}
}

var _ = Describe("Scoreboard", func() {
	var sb *bench.Scoreboard

	BeforeEach(func() {
		sb = bench.NewScoreboard(nil, nil)
	})

	It("should push accepted writes onto the reference queue", func() {
		sb.Check(writeObs(10, false))
		sb.Check(writeObs(20, false))

		Expect(sb.ModelOccupancy()).To(Equal(2))
		Expect(sb.Checked()).To(Equal(uint64(2)))
		Expect(sb.Errors()).To(BeZero())
	})

	It("should ignore a write observed with the full flag set", func() {
		sb.Check(writeObs(10, true))

		Expect(sb.ModelOccupancy()).To(Equal(0))
		Expect(sb.Errors()).To(BeZero())
	})

	It("should match reads against writes in FIFO order", func() {
		sb.Check(writeObs(10, false))
		sb.Check(writeObs(20, false))
		sb.Check(writeObs(30, false))

		sb.Check(readObs(10, false))
		sb.Check(readObs(20, false))
		sb.Check(readObs(30, false))

		Expect(sb.Matches()).To(Equal(uint64(3)))
		Expect(sb.ModelOccupancy()).To(Equal(0))
		Expect(sb.Errors()).To(BeZero())
	})

	It("should ignore a read observed with the empty flag set", func() {
		sb.Check(readObs(0, true))

		Expect(sb.Checked()).To(Equal(uint64(1)))
		Expect(sb.Matches()).To(BeZero())
		Expect(sb.Errors()).To(BeZero())
	})

	It("should count an underflow when the model has nothing to deliver", func() {
		// The observation claims an accepted read, but nothing was ever
		// written: either the flags lied or an observation was mistimed.
		sb.Check(readObs(9, false))

		Expect(sb.Underflows()).To(Equal(uint64(1)))
		Expect(sb.Errors()).To(Equal(uint64(1)))
	})

	It("should count a mismatch without corrupting later comparisons", func() {
		sb.Check(writeObs(5, false))
		sb.Check(writeObs(6, false))

		// Wrong observed value for the first read.
		sb.Check(readObs(7, false))
		Expect(sb.Mismatches()).To(Equal(uint64(1)))

		// The corrupted comparison consumed its entry; the next read still
		// lines up.
		sb.Check(readObs(6, false))
		Expect(sb.Matches()).To(Equal(uint64(1)))
		Expect(sb.Errors()).To(Equal(uint64(1)))
	})

	It("should count an overflow when a write exceeds model capacity", func() {
		for i := 0; i < fifo.Capacity; i++ {
			sb.Check(writeObs(byte(i), false))
		}

		// A 17th write claiming full was low cannot fit in the model.
		sb.Check(writeObs(0xEE, false))

		Expect(sb.Overflows()).To(Equal(uint64(1)))
		Expect(sb.ModelOccupancy()).To(Equal(fifo.Capacity))
	})

	Describe("Run", func() {
		It("should check observations and pulse proceed after each", func() {
			in := make(chan *bench.Request)
			proceed := make(chan struct{}, 1)
			sb := bench.NewScoreboard(in, proceed)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			runDone := make(chan error, 1)
			go func() {
				runDone <- sb.Run(ctx)
			}()

			in <- writeObs(42, false)
			Eventually(proceed).Should(Receive())
			Expect(sb.ModelOccupancy()).To(Equal(1))

			in <- readObs(42, false)
			Eventually(proceed).Should(Receive())
			Expect(sb.Matches()).To(Equal(uint64(1)))

			cancel()
			Eventually(runDone).Should(Receive(MatchError(context.Canceled)))
		})
	})
})
