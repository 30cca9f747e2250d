// Package bench provides the closed-loop verification environment for the
// FIFO component: a stimulus generator, a pin driver, a pin monitor, and a
// reference-model scoreboard, coordinated over single-slot channels and a
// phased logical clock.
package bench

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Kind selects the operation a request performs.
type Kind int

const (
	// Write pushes a payload into the component.
	Write Kind = iota
	// Read pops the oldest accepted payload.
	Read
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Write:
		return "write"
	case Read:
		return "read"
	default:
		return "unknown"
	}
}

// Request describes one stimulus action. The generator creates it, the
// driver fills in the lines it drives, and the monitor builds its own
// Request-shaped observation from the pins. A Request has a single owner at
// a time; ownership transfers with each channel hop, and an observation
// forwarded to the scoreboard is a frozen snapshot that is never mutated
// again.
type Request struct {
	// ID tags the request for tracing.
	ID string

	// Kind is the operation the generator chose.
	Kind Kind

	// WriteEnable and ReadEnable record the enable lines: the driver sets
	// them as it drives the pins, the monitor sets them to what it sampled.
	WriteEnable bool
	ReadEnable  bool

	// InputData is the 8-bit write payload.
	InputData byte

	// OutputData is the 8-bit response. Because the component's output is
	// registered, it is captured one edge after the control lines.
	OutputData byte

	// Full and Empty are the component's status flags at observation time.
	Full  bool
	Empty bool
}

// NewRequest creates a request of the given kind with a fresh ID.
func NewRequest(kind Kind) *Request {
	return &Request{
		ID:   sim.GetIDGenerator().Generate(),
		Kind: kind,
	}
}
