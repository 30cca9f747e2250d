package bench

import (
	"context"
	"fmt"
	"io"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/fifobench/fifo"
)

// Scoreboard checks observations against an in-memory reference model of the
// component. It owns the reference queue and the defect tally exclusively;
// other agents see its results only through the read-only accessors.
type Scoreboard struct {
	in      <-chan *Request
	proceed chan<- struct{}

	refq  sim.Buffer
	trace io.Writer

	checked    uint64
	matches    uint64
	mismatches uint64
	underflows uint64
	overflows  uint64
}

// NewScoreboard creates a scoreboard with an empty reference queue sized to
// the component's capacity.
func NewScoreboard(in <-chan *Request, proceed chan<- struct{}) *Scoreboard {
	return &Scoreboard{
		in:      in,
		proceed: proceed,
		refq:    sim.NewBuffer("Scoreboard.RefQueue", fifo.Capacity),
	}
}

// Run checks one observation at a time until cancelled. After each check it
// sends exactly one proceed pulse on the capacity-one proceed channel,
// releasing the generator; the blocking send is what guarantees at most one
// outstanding pulse and no lost wakeups.
func (s *Scoreboard) Run(ctx context.Context) error {
	for {
		var obs *Request
		select {
		case obs = <-s.in:
		case <-ctx.Done():
			return ctx.Err()
		}

		s.Check(obs)

		select {
		case s.proceed <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Check applies one frozen observation to the reference model. The write and
// read branches are independent; the component's own full/empty flags gate
// them, so the model never second-guesses acceptance.
func (s *Scoreboard) Check(obs *Request) {
	s.checked++

	if obs.WriteEnable && !obs.Full {
		if s.refq.CanPush() {
			s.refq.Push(obs.InputData)
			s.tracef("%s write 0x%02X accepted, model occupancy %d\n",
				obs.ID, obs.InputData, s.refq.Size())
		} else {
			// The component accepted a write its full flag should have
			// blocked.
			s.overflows++
			s.tracef("%s OVERFLOW: write 0x%02X accepted with model full\n",
				obs.ID, obs.InputData)
		}
	}

	if obs.ReadEnable && !obs.Empty {
		e := s.refq.Pop()
		if e == nil {
			// The component delivered a read the model has no value for.
			// Either the component's empty flag lied or an observation was
			// mistimed.
			s.underflows++
			s.tracef("%s UNDERFLOW: read accepted with empty model\n", obs.ID)
			return
		}

		want := e.(byte)
		if want != obs.OutputData {
			s.mismatches++
			s.tracef("%s MISMATCH: expected 0x%02X, observed 0x%02X\n",
				obs.ID, want, obs.OutputData)
		} else {
			s.matches++
			s.tracef("%s read 0x%02X matched\n", obs.ID, want)
		}
	}
}

// Checked returns the number of observations processed.
func (s *Scoreboard) Checked() uint64 {
	return s.checked
}

// Matches returns the number of successful read comparisons.
func (s *Scoreboard) Matches() uint64 {
	return s.matches
}

// Mismatches returns the number of failed read comparisons.
func (s *Scoreboard) Mismatches() uint64 {
	return s.mismatches
}

// Underflows returns the number of reads the model could not serve.
func (s *Scoreboard) Underflows() uint64 {
	return s.underflows
}

// Overflows returns the number of writes the model could not hold.
func (s *Scoreboard) Overflows() uint64 {
	return s.overflows
}

// Errors returns the total defect count: mismatches plus underflows plus
// overflows.
func (s *Scoreboard) Errors() uint64 {
	return s.mismatches + s.underflows + s.overflows
}

// ModelOccupancy returns the number of entries in the reference queue.
func (s *Scoreboard) ModelOccupancy() int {
	return s.refq.Size()
}

func (s *Scoreboard) tracef(format string, args ...any) {
	if s.trace == nil {
		return
	}
	fmt.Fprintf(s.trace, format, args...)
}
