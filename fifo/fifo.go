// Package fifo provides the synchronous FIFO component under test.
//
// The FIFO is modeled as a black box behind a pin interface: a clocked
// 16-entry, 8-bit queue with a synchronous active-high reset, write/read
// enables, and a registered data output. All state changes happen in Tick,
// which corresponds to one rising clock edge.
package fifo

// Capacity is the number of entries the FIFO holds.
const Capacity = 16

// FIFO is a 16-entry, 8-bit synchronous FIFO with a registered output.
//
// The data output is registered: the value accepted by a read at edge N
// appears on the output pins after edge N and stays stable until the next
// accepted read (or reset) overwrites it.
type FIFO struct {
	mem  [Capacity]byte
	head int
	tail int
	occ  int

	pins Pins
}

// New creates a FIFO in the post-power-on state: empty, output zeroed.
func New() *FIFO {
	f := &FIFO{}
	f.pins.out.empty = true
	return f
}

// Pins returns the FIFO's pin interface. The same Pins instance is shared
// by everything wired to this FIFO.
func (f *FIFO) Pins() *Pins {
	return &f.pins
}

// Tick advances the FIFO by one clock edge, sampling the input pins and
// publishing the resulting flags and registered output.
//
// Priority per edge: reset, then write, then read. Simultaneous write+read
// is not a supported input combination; if both enables are asserted the
// write wins and the read is ignored, matching the component contract.
func (f *FIFO) Tick() {
	in := &f.pins.in
	out := &f.pins.out

	switch {
	case in.reset:
		f.head = 0
		f.tail = 0
		f.occ = 0
		out.dataOut = 0

	case in.writeEnable && f.occ < Capacity:
		f.mem[f.tail] = in.dataIn
		f.tail = (f.tail + 1) % Capacity
		f.occ++

	case in.readEnable && f.occ > 0:
		out.dataOut = f.mem[f.head]
		f.head = (f.head + 1) % Capacity
		f.occ--
	}

	out.full = f.occ == Capacity
	out.empty = f.occ == 0
}

// Occupancy returns the number of entries currently held.
func (f *FIFO) Occupancy() int {
	return f.occ
}
