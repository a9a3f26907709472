package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

type recordingService struct {
	mu     sync.Mutex
	events []ports.ActivityInput
}

func (s *recordingService) Process(_ context.Context, in ports.ActivityInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, in)
	return nil
}

func (s *recordingService) History(context.Context, string, string) ([]*domain.ActivityEvent, error) {
	return nil, nil
}

func (s *recordingService) snapshot() []ports.ActivityInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.ActivityInput(nil), s.events...)
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Enqueue(ports.ActivityInput{BlogID: "b", OwnerID: "owner", Action: domain.ActionUpdated})
	}

	deadline := time.After(2 * time.Second)
	for len(svc.snapshot()) < 10 {
		select {
		case <-deadline:
			t.Fatalf("timed out; processed %d of 10 events", len(svc.snapshot()))
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_ShardIsStablePerOwner(t *testing.T) {
	d := NewDispatcher(4, &recordingService{}, zerolog.Nop())

	first := d.shardIndex("owner_a")
	for i := 0; i < 100; i++ {
		if d.shardIndex("owner_a") != first {
			t.Fatal("shard index changed for the same owner")
		}
	}
}
