package queue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/randomizedcoder/fresh-queue/internal/queue"
)

func TestChannel_InvalidCapacity(t *testing.T) {
	for _, size := range []int{-1, 0} {
		q, err := queue.NewChannel[int](size)
		if q != nil {
			t.Errorf("NewChannel(%d): expected nil queue", size)
		}
		if !errors.Is(err, queue.ErrCapacity) {
			t.Errorf("NewChannel(%d): expected ErrCapacity, got %v", size, err)
		}
	}
}

func TestChannel_Full(t *testing.T) {
	q, err := queue.NewChannel[int](2)
	if err != nil {
		t.Fatalf("NewChannel: %v", err)
	}
	if !q.TryPush(1) || !q.TryPush(2) {
		t.Fatal("expected TryPush() = true below capacity")
	}
	if q.TryPush(3) {
		t.Error("expected TryPush() = false on full queue")
	}
	if q.Size() != 2 || q.Cap() != 2 {
		t.Errorf("expected Size() = Cap() = 2, got %d and %d", q.Size(), q.Cap())
	}
}

func TestChannel_ReadyElementBeatsDoneContext(t *testing.T) {
	q, err := queue.NewChannel[int](4)
	if err != nil {
		t.Fatalf("NewChannel: %v", err)
	}
	q.Push(5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := q.WaitAndPopContext(ctx)
	if err != nil || v != 5 {
		t.Errorf("expected (5, nil), got (%d, %v)", v, err)
	}

	v, err = q.WaitAndPopContext(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled on empty queue, got (%d, %v)", v, err)
	}
}

func TestChannel_PushWaitsForSpace(t *testing.T) {
	q, err := queue.NewChannel[int](1)
	if err != nil {
		t.Fatalf("NewChannel: %v", err)
	}
	q.Push(1)

	pushed := make(chan struct{})
	go func() {
		q.Push(2)
		close(pushed)
	}()

	select {
	case <-pushed:
		t.Fatal("Push() returned while the queue was full")
	case <-time.After(10 * time.Millisecond):
	}

	if v := q.WaitAndPop(); v != 1 {
		t.Errorf("expected 1, got %d", v)
	}
	select {
	case <-pushed:
	case <-time.After(handoffTimeout):
		t.Fatal("Push() did not complete after space was freed")
	}
	if h := q.WaitAndPopHandle(); h == nil || *h != 2 {
		t.Errorf("expected handle to 2, got %v", h)
	}
}
