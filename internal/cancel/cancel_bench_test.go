package cancel_test

import (
	"context"
	"testing"

	"github.com/randomizedcoder/fresh-queue/internal/cancel"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkBool bool

// The harness checks Done() between queue operations; these bound the
// cost that check adds to every measured push or pop.

func BenchmarkCancel_Done(b *testing.B) {
	testCases := []struct {
		name string
		c    cancel.Canceler
	}{
		{"Context", cancel.NewContext(context.Background())},
		{"Atomic", cancel.NewAtomic()},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			var result bool
			for i := 0; i < b.N; i++ {
				result = tc.c.Done()
			}
			sinkBool = result
		})
	}
}

func BenchmarkCancel_Done_Parallel(b *testing.B) {
	testCases := []struct {
		name string
		c    cancel.Canceler
	}{
		{"Context", cancel.NewContext(context.Background())},
		{"Atomic", cancel.NewAtomic()},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.RunParallel(func(pb *testing.PB) {
				var result bool
				for pb.Next() {
					result = tc.c.Done()
				}
				sinkBool = result
			})
		})
	}
}
