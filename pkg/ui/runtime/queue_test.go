package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/odvcencio/cellkit/pkg/ui/event"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	var order []string
	for _, name := range []string{"A", "B", "C"} {
		q.InvokeLater(func() { order = append(order, name) })
	}

	ctx := context.Background()
	for range 3 {
		it, err := q.pop(ctx)
		if err != nil {
			t.Fatalf("pop: %v", err)
		}
		it.task()
	}
	if got := len(order); got != 3 || order[0] != "A" || order[1] != "B" || order[2] != "C" {
		t.Errorf("order = %v, want [A B C]", order)
	}
}

func TestQueue_StopDiscardsQueuedAndLaterPosts(t *testing.T) {
	q := NewQueue()
	q.Post(event.NewKeyEvent(nil, event.KeyEnter, 0))
	q.InvokeLater(func() { t.Error("task queued before Stop must not run") })
	q.Stop()
	q.Post(event.NewKeyEvent(nil, event.KeyEscape, 0))
	q.InvokeLater(func() { t.Error("task posted after Stop must not run") })
	q.Stop()

	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	if !q.Stopped() {
		t.Error("Stopped() = false after Stop")
	}
	if q.TryPost(event.NewKeyEvent(nil, event.KeyTab, 0)) {
		t.Error("TryPost after Stop should report false")
	}

	it, err := q.pop(context.Background())
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if !it.stop {
		t.Fatalf("first item = %s, want stop", it.kind())
	}
	if q.Len() != 0 {
		t.Errorf("Len() after stop marker = %d, want 0", q.Len())
	}
}

func TestQueue_PopHonorsContext(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := q.pop(ctx); err == nil {
		t.Fatal("pop on an empty queue should fail when ctx expires")
	}
}

func TestQueue_WakesBlockedPop(t *testing.T) {
	q := NewQueue()
	got := make(chan item, 1)
	go func() {
		it, err := q.pop(context.Background())
		if err == nil {
			got <- it
		}
	}()

	time.Sleep(10 * time.Millisecond)
	q.Post(event.NewKeyEvent(nil, event.KeyEnter, 0))

	select {
	case it := <-got:
		if it.ev == nil {
			t.Error("expected the posted event")
		}
	case <-time.After(time.Second):
		t.Fatal("pop did not wake up")
	}
}

func TestQueue_ReportsDepth(t *testing.T) {
	q := NewQueue()
	var depths []int
	q.onDepth = func(n int) { depths = append(depths, n) }

	q.InvokeLater(func() {})
	q.InvokeLater(func() {})
	_, _ = q.pop(context.Background())

	want := []int{1, 2, 1}
	if len(depths) != len(want) {
		t.Fatalf("depths = %v, want %v", depths, want)
	}
	for i := range want {
		if depths[i] != want[i] {
			t.Errorf("depths = %v, want %v", depths, want)
			break
		}
	}
}
