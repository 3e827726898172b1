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

var (
	// ErrConservation means an item was lost, duplicated or fabricated.
	ErrConservation = errors.New("harness: pushed and popped items differ")
	// ErrOrder means a consumer saw one producer's items out of order.
	ErrOrder = errors.New("harness: per-producer order violated")
)

// RunStress pushes ItemsPerProducer items from each producer while the
// consumers pop exactly that many in total, then checks that every item
// came out exactly once, that each consumer saw every producer's items
// in push order, and that the queue ended empty.
//
// Cancelling ctx stops the run and returns ctx.Err() wrapped.
func RunStress(ctx context.Context, q queue.Queue[Item], cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	total := cfg.Producers * cfg.ItemsPerProducer
	report := Report{Scenario: "stress", Producers: cfg.Producers, Consumers: cfg.Consumers}
	log.Infof("stress: %d producers x %d items, %d consumers", cfg.Producers, cfg.ItemsPerProducer, cfg.Consumers)

	// seen[p*ItemsPerProducer+seq] counts pops of that item.
	seen := make([]atomic.Uint32, total)
	var pushed, popped atomic.Uint64
	var claims atomic.Int64
	claims.Store(int64(total))

	ticker := tick.NewAtomicTicker(cfg.ProgressEvery)
	log.V(1).Infof("stress: progress every %v", ticker.Interval())

	// The first failing worker cancels gctx. Producers poll stop between
	// pushes; consumers block on its context.
	g, gctx := errgroup.WithContext(ctx)
	stop := cancel.NewContext(gctx)
	defer stop.Cancel()

	start := time.Now()
	var producing sync.WaitGroup
	for p := 0; p < cfg.Producers; p++ {
		producing.Add(1)
		g.Go(func() error {
			defer producing.Done()
			for seq := 0; seq < cfg.ItemsPerProducer; seq++ {
				if !push(q, Item{Producer: p, Seq: seq}, stop.Done) {
					return errors.Wrapf(stop.Context().Err(), "producer %d at seq %d", p, seq)
				}
				pushed.Add(1)
			}
			return nil
		})
	}

	// Bounded lock-free rings may hold the last items back until told no
	// more pushes are coming.
	g.Go(func() error {
		producing.Wait()
		if d, ok := q.(queue.Drainer); ok {
			d.Drain()
		}
		return nil
	})

	for c := 0; c < cfg.Consumers; c++ {
		g.Go(func() error {
			last := make([]int, cfg.Producers)
			for i := range last {
				last[i] = -1
			}
			for claims.Add(-1) >= 0 {
				v, err := q.WaitAndPopContext(stop.Context())
				if err != nil {
					return errors.Wrapf(err, "consumer %d", c)
				}
				if err := record(seen, last, v, cfg); err != nil {
					log.Errorf("stress: consumer %d: %v", c, err)
					return errors.Wrapf(err, "consumer %d", c)
				}
				n := popped.Add(1)
				if ticker.Tick() {
					log.V(1).Infof("stress: progress #%d: %d/%d popped", ticker.Ticks(), n, total)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	report.Elapsed = time.Since(start)
	report.Pushed = pushed.Load()
	report.Popped = popped.Load()
	report.Progress = ticker.Ticks()
	if err != nil {
		return report, err
	}

	for i := range seen {
		if n := seen[i].Load(); n != 1 {
			err := errors.Wrapf(ErrConservation, "item %+v popped %d times",
				Item{Producer: i / cfg.ItemsPerProducer, Seq: i % cfg.ItemsPerProducer}, n)
			log.Error(err)
			return report, err
		}
	}
	if !q.Empty() {
		err := errors.Wrapf(ErrConservation, "queue not empty after %d pops", total)
		log.Error(err)
		return report, err
	}

	log.Infof("stress: %d items verified in %v", total, report.Elapsed)
	return report, nil
}

// record checks v against the consumer's last seen sequence per producer
// and counts it in seen.
func record(seen []atomic.Uint32, last []int, v Item, cfg Config) error {
	if v.Producer < 0 || v.Producer >= cfg.Producers || v.Seq < 0 || v.Seq >= cfg.ItemsPerProducer {
		return errors.Wrapf(ErrConservation, "fabricated item %+v", v)
	}
	if n := seen[v.Producer*cfg.ItemsPerProducer+v.Seq].Add(1); n != 1 {
		return errors.Wrapf(ErrConservation, "item %+v popped %d times", v, n)
	}
	if v.Seq <= last[v.Producer] {
		return errors.Wrapf(ErrOrder, "producer %d: seq %d after %d", v.Producer, v.Seq, last[v.Producer])
	}
	last[v.Producer] = v.Seq
	return nil
}
