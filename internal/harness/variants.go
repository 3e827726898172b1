package harness

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/randomizedcoder/fresh-queue/internal/queue"
)

// ErrUnknownVariant is returned by Lookup for an unregistered name.
var ErrUnknownVariant = errors.New("harness: unknown variant")

// Item is the element pushed by every scenario. Producer identifies the
// pushing goroutine and Seq counts its pushes from zero.
type Item struct {
	Producer int
	Seq      int
}

// Factory builds an empty queue sized from cfg.
type Factory func(cfg Config) (queue.Queue[Item], error)

// Variant is a named queue implementation.
type Variant struct {
	Name        string
	Description string
	// Bounded variants make producers wait while full.
	Bounded bool
	// LockFree variants synchronize through separate atomics, which the
	// race detector cannot follow.
	LockFree bool
	New      Factory
}

var variants = map[string]Variant{
	"channel": {
		Name:        "channel",
		Description: "buffered channel",
		Bounded:     true,
		New: func(cfg Config) (queue.Queue[Item], error) {
			return checked(queue.NewChannel[Item](cfg.Capacity))
		},
	},
	"single": {
		Name:        "single",
		Description: "one mutex around a deque",
		New: func(Config) (queue.Queue[Item], error) {
			return queue.NewSingleLock[Item](), nil
		},
	},
	"dual": {
		Name:        "dual",
		Description: "linked list with separate head and tail locks",
		New: func(Config) (queue.Queue[Item], error) {
			return queue.NewDualLock[Item](), nil
		},
	},
	"lockfree": {
		Name:        "lockfree",
		Description: "lock-free MPMC ring (lfq)",
		Bounded:     true,
		LockFree:    true,
		New: func(cfg Config) (queue.Queue[Item], error) {
			return checked(queue.NewLockFree[Item](cfg.Capacity))
		},
	},
	"sharded": {
		Name:        "sharded",
		Description: "sharded lock-free MPSC ring (go-lock-free-ring)",
		Bounded:     true,
		LockFree:    true,
		New: func(cfg Config) (queue.Queue[Item], error) {
			return checked(queue.NewSharded[Item](cfg.Capacity, cfg.shards()))
		},
	},
}

// checked keeps a failed constructor from returning a non-nil interface
// around a nil pointer.
func checked[Q queue.Queue[Item]](q Q, err error) (queue.Queue[Item], error) {
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Variants returns every registered variant sorted by name.
func Variants() []Variant {
	out := make([]Variant, 0, len(variants))
	for _, v := range variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the variant registered under name.
func Lookup(name string) (Variant, error) {
	v, ok := variants[name]
	if !ok {
		return Variant{}, errors.Wrapf(ErrUnknownVariant, "%q", name)
	}
	return v, nil
}
