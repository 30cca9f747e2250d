package bench

import (
	"context"
	"errors"
	"io"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/fifobench/clock"
	"github.com/sarchlab/fifobench/fifo"
)

// State tracks the environment through its run lifecycle.
type State int

const (
	// StateIdle means the environment is built but has not run.
	StateIdle State = iota
	// StateResetting means the reset sequence is being driven.
	StateResetting
	// StateRunning means all four agents are live.
	StateRunning
	// StateDraining means stimulus is exhausted and the perpetual agents
	// are being released.
	StateDraining
	// StateReported means the run finished and the report is final.
	StateReported
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResetting:
		return "resetting"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateReported:
		return "reported"
	default:
		return "unknown"
	}
}

// Report summarizes one verification run.
type Report struct {
	// Requests is the number of requests the generator produced.
	Requests int
	// Observations is the number of observations the monitor forwarded.
	Observations uint64
	// Matches is the number of successful read comparisons.
	Matches uint64
	// Mismatches is the number of failed read comparisons.
	Mismatches uint64
	// Underflows is the number of reads the model could not serve.
	Underflows uint64
	// Overflows is the number of writes the model could not hold.
	Overflows uint64
	// Cycles is the number of clock edges the run took.
	Cycles uint64
}

// Errors returns the run's defect tally. A passing run reports 0.
func (r *Report) Errors() uint64 {
	return r.Mismatches + r.Underflows + r.Overflows
}

// Environment owns the component under test, the clock, the channels, and
// the four agents for one verification run. An Environment is single-use:
// build, Run, read the report, discard.
type Environment struct {
	cfg      *Config
	seq      []Kind
	payloads []byte
	trace    io.Writer

	dut *fifo.FIFO
	clk *clock.Clock
	gen *Generator
	drv *Driver
	mon *Monitor
	sb  *Scoreboard

	reqCh     chan *Request
	obsCh     chan *Request
	proceedCh chan struct{}
	doneCh    chan struct{}

	state State
}

// Option configures an Environment.
type Option func(*Environment)

// WithConfig replaces the whole run configuration.
func WithConfig(cfg *Config) Option {
	return func(e *Environment) {
		e.cfg = cfg.Clone()
	}
}

// WithCount sets the number of requests to generate.
func WithCount(n int) Option {
	return func(e *Environment) {
		e.cfg.Count = n
	}
}

// WithSeed sets the randomization seed.
func WithSeed(seed int64) Option {
	return func(e *Environment) {
		e.cfg.Seed = seed
	}
}

// WithSequence replaces the random request stream with a directed sequence.
// The request count becomes the sequence length.
func WithSequence(kinds ...Kind) Option {
	return func(e *Environment) {
		e.seq = kinds
		e.cfg.Count = len(kinds)
	}
}

// WithPayloads replaces the randomized write payloads with a directed list,
// consumed in order by the driver (cycling if exhausted).
func WithPayloads(values ...byte) Option {
	return func(e *Environment) {
		e.payloads = values
	}
}

// WithTrace sets a writer that receives a per-observation trace of the
// scoreboard's decisions.
func WithTrace(w io.Writer) Option {
	return func(e *Environment) {
		e.trace = w
	}
}

// NewEnvironment builds a fully wired environment: one FIFO, one clock, the
// two single-slot data channels, the proceed and done signals, and one
// instance of each agent.
func NewEnvironment(opts ...Option) *Environment {
	e := &Environment{
		cfg:   DefaultConfig(),
		state: StateIdle,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.dut = fifo.New()
	e.clk = clock.New()
	e.clk.OnEdge(func(uint64) {
		e.dut.Tick()
	})

	// Unbuffered data channels: at most one request in flight per hop.
	e.reqCh = make(chan *Request)
	e.obsCh = make(chan *Request)

	// Capacity-one signal channels: at most one outstanding pulse, and a
	// pulse is never lost.
	e.proceedCh = make(chan struct{}, 1)
	e.doneCh = make(chan struct{}, 1)

	genRNG := rand.New(rand.NewSource(e.cfg.Seed))
	drvRNG := rand.New(rand.NewSource(e.cfg.Seed + 1))

	e.gen = NewGenerator(e.cfg.Count, genRNG, e.seq, e.reqCh, e.proceedCh, e.doneCh)
	e.drv = NewDriver(e.dut.Pins().Driver(), e.clk.Tap(clock.PhaseDrive), e.reqCh, drvRNG, e.cfg)
	e.drv.payloads = e.payloads
	e.mon = NewMonitor(e.dut.Pins().Monitor(), e.clk.Tap(clock.PhaseSample), e.obsCh)
	e.sb = NewScoreboard(e.obsCh, e.proceedCh)
	e.sb.trace = e.trace

	return e
}

// State returns the environment's lifecycle state. It is stable when no Run
// is executing.
func (e *Environment) State() State {
	return e.state
}

// Scoreboard returns the environment's scoreboard.
func (e *Environment) Scoreboard() *Scoreboard {
	return e.sb
}

// Run drives one full verification run: reset, concurrent stimulus and
// checking, drain, report. It returns once the generator has signalled done
// and every agent has acknowledged cancellation; the returned report is
// final. A randomization or configuration failure aborts the run with an
// error and no report.
func (e *Environment) Run(ctx context.Context) (*Report, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	// The clock and the passive agents start first so that no tap misses an
	// edge once stimulus begins. The monitor treats reset cycles as
	// non-observations, so starting it before reset is safe.
	g.Go(func() error { return e.clk.Run(gctx) })
	g.Go(func() error { return e.mon.Run(gctx) })
	g.Go(func() error { return e.sb.Run(gctx) })

	e.state = StateResetting
	if err := e.drv.idle(gctx, e.cfg.SettleCycles); err != nil {
		return nil, e.abort(cancel, g, err)
	}
	if err := e.drv.Reset(gctx); err != nil {
		return nil, e.abort(cancel, g, err)
	}

	e.state = StateRunning
	g.Go(func() error { return e.drv.Run(gctx) })
	g.Go(func() error { return e.gen.Run(gctx) })

	// The driver, monitor, and scoreboard never terminate on their own; the
	// run ends on the generator's done signal, after the last observation
	// has been checked.
	select {
	case <-e.doneCh:
	case <-gctx.Done():
		err := g.Wait()
		e.state = StateReported
		return nil, err
	}

	e.state = StateDraining
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		e.state = StateReported
		return nil, err
	}

	e.state = StateReported
	return e.report(), nil
}

// abort tears the agents down after a failure during reset, preferring the
// root-cause error from the group over the bare cancellation.
func (e *Environment) abort(cancel context.CancelFunc, g *errgroup.Group, err error) error {
	cancel()
	if werr := g.Wait(); werr != nil && !errors.Is(werr, context.Canceled) {
		err = werr
	}
	e.state = StateReported
	return err
}

func (e *Environment) report() *Report {
	return &Report{
		Requests:     e.gen.Produced(),
		Observations: e.mon.Observed(),
		Matches:      e.sb.Matches(),
		Mismatches:   e.sb.Mismatches(),
		Underflows:   e.sb.Underflows(),
		Overflows:    e.sb.Overflows(),
		Cycles:       e.clk.Cycles(),
	}
}
