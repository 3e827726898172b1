package queue_test

import (
	"errors"
	"testing"

	"github.com/randomizedcoder/fresh-queue/internal/queue"
)

func TestSingleLock_InitiallyEmptySize(t *testing.T) {
	q := queue.NewSingleLock[int]()
	if q.Size() != 0 {
		t.Errorf("expected Size() = 0, got %d", q.Size())
	}
}

func TestSingleLock_OnePushSize(t *testing.T) {
	q := queue.NewSingleLock[int]()
	q.Push(0)
	if q.Size() != 1 {
		t.Errorf("expected Size() = 1, got %d", q.Size())
	}
}

func TestSingleLock_ManyPushPopSize(t *testing.T) {
	q := queue.NewSingleLock[int]()
	for i := 0; i < 10; i++ {
		q.Push(i)
	}
	if q.Size() != 10 {
		t.Errorf("expected Size() = 10, got %d", q.Size())
	}

	for i := 0; i < 5; i++ {
		v, err := q.Pop()
		if err != nil {
			t.Fatalf("Pop() #%d: %v", i, err)
		}
		if v != i {
			t.Errorf("FIFO violation: expected %d, got %d", i, v)
		}
	}
	if q.Size() != 5 {
		t.Errorf("expected Size() = 5, got %d", q.Size())
	}
}

func TestSingleLock_EmptyPopError(t *testing.T) {
	q := queue.NewSingleLock[int]()

	_, err := q.Pop()
	if !errors.Is(err, queue.ErrEmptyQueue) {
		t.Errorf("expected ErrEmptyQueue, got %v", err)
	}
	if !queue.IsEmpty(err) {
		t.Error("expected IsEmpty(err) = true")
	}

	var emptyErr queue.EmptyQueueError
	if !errors.As(err, &emptyErr) {
		t.Error("expected error of kind EmptyQueueError")
	}
	if err.Error() != "queue: called pop on empty queue" {
		t.Errorf("unexpected message %q", err.Error())
	}

	h, err := q.PopHandle()
	if h != nil || !errors.Is(err, queue.ErrEmptyQueue) {
		t.Errorf("expected (nil, ErrEmptyQueue), got (%v, %v)", h, err)
	}
}

func TestSingleLock_PopHandle(t *testing.T) {
	q := queue.NewSingleLock[string]()
	q.Push("a")
	q.Push("b")

	h, err := q.PopHandle()
	if err != nil {
		t.Fatalf("PopHandle: %v", err)
	}
	if *h != "a" {
		t.Errorf("expected %q, got %q", "a", *h)
	}

	// The handle is owned by the caller; writing through it does not
	// affect what remains queued.
	*h = "changed"
	v, err := q.Pop()
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if v != "b" {
		t.Errorf("expected %q, got %q", "b", v)
	}
}

func TestSingleLock_WrappedEmptyError(t *testing.T) {
	q := queue.NewSingleLock[int]()
	_, err := q.Pop()

	wrapped := errors.Join(errors.New("drain step"), err)
	if !queue.IsEmpty(wrapped) {
		t.Error("expected IsEmpty to see through wrapping")
	}
	if queue.IsEmpty(errors.New("queue: called pop on empty queue")) {
		t.Error("expected IsEmpty = false for an unrelated error with the same text")
	}
}

func TestSingleLock_Interfaces(t *testing.T) {
	var q any = queue.NewSingleLock[int]()
	if _, ok := q.(queue.Queue[int]); !ok {
		t.Error("expected SingleLockQueue to implement Queue")
	}
	if _, ok := q.(queue.Sizer); !ok {
		t.Error("expected SingleLockQueue to implement Sizer")
	}
	if _, ok := q.(queue.Popper[int]); !ok {
		t.Error("expected SingleLockQueue to implement Popper")
	}
}
