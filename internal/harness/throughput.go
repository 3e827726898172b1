package harness

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/fresh-queue/internal/cancel"
	"github.com/randomizedcoder/fresh-queue/internal/queue"
	"github.com/randomizedcoder/fresh-queue/internal/tick"
)

// RunThroughput keeps producers pushing for cfg.Duration while consumers
// pop with TryPop. Once producers stop, consumers drain what is left.
// The run fails with ErrConservation if pushes and pops disagree.
//
// Cancelling ctx ends the pushing phase early; the drain still runs.
func RunThroughput(ctx context.Context, q queue.Queue[Item], cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	report := Report{Scenario: "throughput", Producers: cfg.Producers, Consumers: cfg.Consumers}
	log.Infof("throughput: %d producers, %d consumers for %v", cfg.Producers, cfg.Consumers, cfg.Duration)

	start := time.Now()

	// Producers poll an atomic flag; ctx only feeds it.
	stop := cancel.NewAtomic()
	stopTimer := stop.CancelAfter(cfg.Duration)
	defer stopTimer()
	parent := cancel.NewContext(ctx)
	defer parent.Cancel()
	detach := parent.Forward(stop)
	defer detach()

	ticker := tick.NewAtomicTicker(cfg.ProgressEvery)
	log.V(1).Infof("throughput: progress every %v", ticker.Interval())

	var pushed, popped atomic.Uint64
	var producersDone atomic.Bool

	var g errgroup.Group
	var producing sync.WaitGroup

	for p := 0; p < cfg.Producers; p++ {
		producing.Add(1)
		g.Go(func() error {
			defer producing.Done()
			for seq := 0; !stop.Done(); seq++ {
				if !push(q, Item{Producer: p, Seq: seq}, stop.Done) {
					return nil
				}
				pushed.Add(1)
			}
			return nil
		})
	}

	g.Go(func() error {
		producing.Wait()
		if d, ok := q.(queue.Drainer); ok {
			d.Drain()
		}
		producersDone.Store(true)
		return nil
	})

	for c := 0; c < cfg.Consumers; c++ {
		g.Go(func() error {
			for {
				// Read the flag before popping so an empty pop after it
				// means nothing more can arrive.
				finished := producersDone.Load()
				if _, ok := q.TryPop(); ok {
					popped.Add(1)
					if ticker.Tick() {
						log.V(1).Infof("throughput: progress #%d: %d pushed, %d popped", ticker.Ticks(), pushed.Load(), popped.Load())
					}
					continue
				}
				if finished {
					return nil
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	report.Elapsed = time.Since(start)
	report.Pushed = pushed.Load()
	report.Popped = popped.Load()
	report.Progress = ticker.Ticks()

	if report.Pushed != report.Popped || !q.Empty() {
		err := errors.Wrapf(ErrConservation, "pushed %d, popped %d, empty=%v",
			report.Pushed, report.Popped, q.Empty())
		log.Error(err)
		return report, err
	}

	log.Infof("throughput: %d ops in %v (%.0f ops/s)", report.Pushed+report.Popped, report.Elapsed, report.OpsPerSec())
	return report, nil
}
