package harness

import (
	"time"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/randomizedcoder/fresh-queue/internal/queue"
)

// RunPushPop pushes n items from one goroutine and pops them back. Items
// go in batches of up to batch; a bounded queue ends a batch early when
// it fills. Every pop is checked against push order.
func RunPushPop(q queue.Queue[Item], n, batch int) (Report, error) {
	if n < 1 || batch < 1 {
		return Report{}, errors.Wrapf(ErrInvalidConfig, "pushpop needs n >= 1 and batch >= 1, got %d and %d", n, batch)
	}
	report := Report{Scenario: "pushpop", Producers: 1, Consumers: 1}
	log.V(1).Infof("pushpop: %d items in batches of %d", n, batch)

	next := 0
	start := time.Now()
	for pushed := 0; pushed < n; {
		k := 0
		for ; k < batch && pushed < n; k++ {
			if !tryPush(q, Item{Seq: pushed}) {
				break
			}
			pushed++
		}
		if k == 0 {
			return report, errors.Wrapf(ErrConservation, "push %d refused by an empty queue", pushed)
		}
		for ; k > 0; k-- {
			v, ok := q.TryPop()
			if !ok {
				return report, errors.Wrapf(ErrConservation, "pop %d found the queue empty", next)
			}
			if v.Seq != next {
				return report, errors.Wrapf(ErrOrder, "expected seq %d, got %d", next, v.Seq)
			}
			next++
		}
	}
	report.Elapsed = time.Since(start)
	report.Pushed = uint64(n)
	report.Popped = uint64(next)

	if !q.Empty() {
		return report, errors.Wrapf(ErrConservation, "queue not empty after %d pops", next)
	}
	return report, nil
}
