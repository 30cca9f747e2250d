package bench

import (
	"context"
	"fmt"
	"math/rand"
)

// Generator produces the randomized request stream: each request is a write
// or a read with equal probability. After handing a request to the driver it
// waits for one proceed pulse from the scoreboard before producing the next,
// so stimulus never outruns checking.
type Generator struct {
	count int
	rng   *rand.Rand
	seq   []Kind

	out     chan<- *Request
	proceed <-chan struct{}
	done    chan<- struct{}

	produced int
}

// NewGenerator creates a generator that will produce count requests. If seq
// is non-nil the generator replays it instead of randomizing, which is how
// directed scenarios run.
func NewGenerator(
	count int,
	rng *rand.Rand,
	seq []Kind,
	out chan<- *Request,
	proceed <-chan struct{},
	done chan<- struct{},
) *Generator {
	return &Generator{
		count:   count,
		rng:     rng,
		seq:     seq,
		out:     out,
		proceed: proceed,
		done:    done,
	}
}

// Run produces exactly the configured number of requests, then fires the
// done signal once and returns. A randomization draw outside the request
// distribution is a fatal configuration error that aborts the run.
func (g *Generator) Run(ctx context.Context) error {
	for i := 0; i < g.count; i++ {
		kind, err := g.nextKind(i)
		if err != nil {
			return err
		}

		req := NewRequest(kind)

		select {
		case g.out <- req:
		case <-ctx.Done():
			return ctx.Err()
		}

		select {
		case <-g.proceed:
		case <-ctx.Done():
			return ctx.Err()
		}

		g.produced++
	}

	select {
	case g.done <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

// Produced returns the number of requests fully produced, i.e. sent and
// acknowledged by a proceed pulse.
func (g *Generator) Produced() int {
	return g.produced
}

func (g *Generator) nextKind(i int) (Kind, error) {
	if g.seq != nil {
		return g.seq[i%len(g.seq)], nil
	}

	draw := g.rng.Intn(2)
	switch draw {
	case 0:
		return Write, nil
	case 1:
		return Read, nil
	default:
		return 0, fmt.Errorf("randomization produced out-of-range draw %d", draw)
	}
}
