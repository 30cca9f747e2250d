package bench

import (
	"context"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/fifobench/clock"
	"github.com/sarchlab/fifobench/fifo"
)

// Monitor independently reconstructs observations from the pins. It never
// touches the generator-to-driver channel; the driver and monitor agree only
// through the pin interface and the clock.
//
// Each observation spans a two-edge window. In its sample slot at edge N the
// monitor captures the currently-driven enables, data-in, and the pre-edge
// full/empty flags into a new Request. The component's output is registered,
// so the response to that edge is only on the pins one edge later: at edge
// N+1 the monitor captures data-out into the same Request and only then
// forwards it. Getting these two samples exactly one edge apart, attributed
// to the same Request, is what keeps the scoreboard's comparisons aligned.
type Monitor struct {
	pins fifo.MonitorPins
	tap  *clock.Tap
	out  chan<- *Request

	pending  *Request
	observed uint64
}

// NewMonitor creates a monitor for the given pin view. The tap must be a
// sample-phase tap on the bench clock.
func NewMonitor(pins fifo.MonitorPins, tap *clock.Tap, out chan<- *Request) *Monitor {
	return &Monitor{
		pins: pins,
		tap:  tap,
		out:  out,
	}
}

// Run samples the pins on every edge until cancelled. Observations with
// neither enable asserted are idle cycles and are not forwarded, so the
// scoreboard sees exactly one observation per driven request.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		if _, ok := m.tap.Wait(ctx); !ok {
			return ctx.Err()
		}

		// Close the previous observation window: the registered output for
		// its edge is on the pins now.
		if p := m.pending; p != nil {
			p.OutputData = m.pins.DataOut()
			m.pending = nil

			if p.WriteEnable || p.ReadEnable {
				select {
				case m.out <- p:
				case <-ctx.Done():
					return ctx.Err()
				}
				m.observed++
			}
		}

		// Open a new window from the current pin state. Reset cycles are
		// not observations.
		if !m.pins.Reset() {
			m.pending = m.capture()
		}

		m.tap.Done()
	}
}

// Observed returns the number of observations forwarded to the scoreboard.
func (m *Monitor) Observed() uint64 {
	return m.observed
}

func (m *Monitor) capture() *Request {
	obs := &Request{
		ID:          sim.GetIDGenerator().Generate(),
		WriteEnable: m.pins.WriteEnable(),
		ReadEnable:  m.pins.ReadEnable(),
		InputData:   m.pins.DataIn(),
		Full:        m.pins.Full(),
		Empty:       m.pins.Empty(),
	}

	if obs.ReadEnable {
		obs.Kind = Read
	}

	return obs
}
