package fifo

// inputPins are the lines driven into the FIFO.
type inputPins struct {
	reset       bool
	writeEnable bool
	readEnable  bool
	dataIn      byte
}

// outputPins are the lines driven by the FIFO.
type outputPins struct {
	dataOut byte
	full    bool
	empty   bool
}

// Pins is the FIFO's pin interface. It is shared state between the FIFO,
// its driver, and its monitor, so access is handed out as two disjoint
// capability views: DriverPins can only set input lines, MonitorPins can
// only read. Callers must serialize access on clock-edge boundaries; the
// views carry no locking of their own.
type Pins struct {
	in  inputPins
	out outputPins
}

// Driver returns the input-driving view of the pins.
func (p *Pins) Driver() DriverPins {
	return DriverPins{p: p}
}

// Monitor returns the observation-only view of the pins.
func (p *Pins) Monitor() MonitorPins {
	return MonitorPins{p: p}
}

// DriverPins is the write-only view of the FIFO's input lines.
type DriverPins struct {
	p *Pins
}

// SetReset drives the synchronous active-high reset line.
func (d DriverPins) SetReset(v bool) {
	d.p.in.reset = v
}

// SetWriteEnable drives the write-enable line.
func (d DriverPins) SetWriteEnable(v bool) {
	d.p.in.writeEnable = v
}

// SetReadEnable drives the read-enable line.
func (d DriverPins) SetReadEnable(v bool) {
	d.p.in.readEnable = v
}

// SetDataIn drives the 8-bit data-in lines.
func (d DriverPins) SetDataIn(v byte) {
	d.p.in.dataIn = v
}

// MonitorPins is the read-only view of all FIFO pins.
type MonitorPins struct {
	p *Pins
}

// Reset reports the state of the reset line.
func (m MonitorPins) Reset() bool {
	return m.p.in.reset
}

// WriteEnable reports the state of the write-enable line.
func (m MonitorPins) WriteEnable() bool {
	return m.p.in.writeEnable
}

// ReadEnable reports the state of the read-enable line.
func (m MonitorPins) ReadEnable() bool {
	return m.p.in.readEnable
}

// DataIn reports the value on the data-in lines.
func (m MonitorPins) DataIn() byte {
	return m.p.in.dataIn
}

// DataOut reports the value on the registered data-out lines.
func (m MonitorPins) DataOut() byte {
	return m.p.out.dataOut
}

// Full reports the full flag.
func (m MonitorPins) Full() bool {
	return m.p.out.full
}

// Empty reports the empty flag.
func (m MonitorPins) Empty() bool {
	return m.p.out.empty
}
