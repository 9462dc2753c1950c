package relay

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/toomuch2learn/catalogue-service/internal/core/domain"
)

func testEvent(i int) domain.ItemEvent {
	return domain.ItemEvent{
		Type: domain.EventCreated,
		Item: domain.CatalogueItem{SKU: fmt.Sprintf("SKU-%04d", i), Name: "Item", Category: domain.CategoryBooks},
	}
}

func recvEvent(t *testing.T, ch <-chan domain.ItemEvent) domain.ItemEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "subscriber channel closed early")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return domain.ItemEvent{}
	}
}

func TestRelay_DeliversInOrder(t *testing.T) {
	hub := NewHub()
	r := NewRelay(hub, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	ch, unsub := hub.Subscribe()
	defer unsub()

	const n = 200
	for i := 0; i < n; i++ {
		r.Publish(testEvent(i))
	}

	for i := 0; i < n; i++ {
		ev := recvEvent(t, ch)
		assert.Equal(t, fmt.Sprintf("SKU-%04d", i), ev.Item.SKU)
	}
}

func TestRelay_PublishNeverBlocks(t *testing.T) {
	// No dispatch loop running: everything accumulates in the backlog.
	r := NewRelay(NewHub(), zap.NewNop())

	const n = 10000
	done := make(chan struct{})
	go func() {
		for i := 0; i < n; i++ {
			r.Publish(testEvent(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked without a consumer")
	}
	assert.Equal(t, n, r.QueueDepth())
}

func TestRelay_ConcurrentProducersLoseNothing(t *testing.T) {
	hub := NewHub()
	r := NewRelay(hub, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	ch, unsub := hub.Subscribe()
	defer unsub()

	const producers = 8
	const perProducer = 50
	for p := 0; p < producers; p++ {
		go func(p int) {
			for i := 0; i < perProducer; i++ {
				r.Publish(testEvent(p*perProducer + i))
			}
		}(p)
	}

	seen := make(map[string]bool)
	for i := 0; i < producers*perProducer; i++ {
		ev := recvEvent(t, ch)
		require.False(t, seen[ev.Item.SKU], "duplicate delivery of %s", ev.Item.SKU)
		seen[ev.Item.SKU] = true
	}
	assert.Len(t, seen, producers*perProducer)
}

func TestRelay_StopsOnCancel(t *testing.T) {
	hub := NewHub()
	r := NewRelay(hub, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)

	ch, unsub := hub.Subscribe()
	defer unsub()

	cancel()
	time.Sleep(50 * time.Millisecond)

	r.Publish(testEvent(1))
	select {
	case ev := <-ch:
		t.Fatalf("received %v after dispatch loop stopped", ev)
	case <-time.After(100 * time.Millisecond):
	}
}
