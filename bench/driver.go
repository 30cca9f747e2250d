package bench

import (
	"context"
	"math/rand"

	"github.com/sarchlab/fifobench/clock"
	"github.com/sarchlab/fifobench/fifo"
)

// Driver applies requests to the component's input pins. It owns the reset
// sequence and is the only agent that writes pin state; all of its pin
// access happens inside its drive-phase clock slot.
type Driver struct {
	pins fifo.DriverPins
	tap  *clock.Tap
	in   <-chan *Request
	rng  *rand.Rand

	resetCycles int
	payloadMin  byte
	payloadMax  byte

	payloads   []byte
	payloadIdx int

	active *Request
}

// NewDriver creates a driver for the given pin view. The tap must be a
// drive-phase tap on the bench clock.
func NewDriver(
	pins fifo.DriverPins,
	tap *clock.Tap,
	in <-chan *Request,
	rng *rand.Rand,
	cfg *Config,
) *Driver {
	return &Driver{
		pins:        pins,
		tap:         tap,
		in:          in,
		rng:         rng,
		resetCycles: cfg.ResetCycles,
		payloadMin:  cfg.PayloadMin,
		payloadMax:  cfg.PayloadMax,
	}
}

// Reset drives the reset sequence: reset asserted with both enables
// deasserted and data-in zeroed, held for the configured number of edges,
// then deasserted. It runs synchronously on the caller's goroutine and
// returns once the component is out of reset.
func (d *Driver) Reset(ctx context.Context) error {
	for i := 0; i < d.resetCycles; i++ {
		if _, ok := d.tap.Wait(ctx); !ok {
			return ctx.Err()
		}
		d.pins.SetReset(true)
		d.pins.SetWriteEnable(false)
		d.pins.SetReadEnable(false)
		d.pins.SetDataIn(0)
		d.tap.Done()
	}

	if _, ok := d.tap.Wait(ctx); !ok {
		return ctx.Err()
	}
	d.pins.SetReset(false)
	d.tap.Done()

	return nil
}

// Run services one request at a time until cancelled. A request is driven
// for exactly one edge: the enable (and, for writes, a fresh payload)
// asserted in one drive slot and deasserted in the next. Edges with no
// pending request leave the pins idle.
func (d *Driver) Run(ctx context.Context) error {
	for {
		if _, ok := d.tap.Wait(ctx); !ok {
			return ctx.Err()
		}

		if d.active != nil {
			d.pins.SetWriteEnable(false)
			d.pins.SetReadEnable(false)
			d.active = nil
		} else if req := d.poll(); req != nil {
			d.drive(req)
		}

		d.tap.Done()
	}
}

// idle lets n edges pass without touching the pins. The environment uses it
// to let the clock settle before reset.
func (d *Driver) idle(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if _, ok := d.tap.Wait(ctx); !ok {
			return ctx.Err()
		}
		d.tap.Done()
	}
	return nil
}

func (d *Driver) poll() *Request {
	select {
	case req := <-d.in:
		return req
	default:
		return nil
	}
}

// drive asserts exactly one enable for the request. Write and read drives
// are mutually exclusive per request.
func (d *Driver) drive(req *Request) {
	switch req.Kind {
	case Write:
		req.WriteEnable = true
		req.InputData = d.nextPayload()
		d.pins.SetDataIn(req.InputData)
		d.pins.SetWriteEnable(true)
	case Read:
		req.ReadEnable = true
		d.pins.SetReadEnable(true)
	}

	d.active = req
}

func (d *Driver) nextPayload() byte {
	if len(d.payloads) > 0 {
		v := d.payloads[d.payloadIdx%len(d.payloads)]
		d.payloadIdx++
		return v
	}

	span := int(d.payloadMax) - int(d.payloadMin) + 1
	return d.payloadMin + byte(d.rng.Intn(span))
}
