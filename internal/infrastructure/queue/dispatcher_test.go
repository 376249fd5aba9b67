package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/blendpos/pos-backend/internal/core/ports"
)

type collectingAuditService struct {
	mu     sync.Mutex
	events []ports.AuditEventInput
	done   chan struct{}
	want   int
}

func (s *collectingAuditService) Process(_ context.Context, event ports.AuditEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_DeliversAllEvents(t *testing.T) {
	svc := &collectingAuditService{done: make(chan struct{}), want: 3}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(ports.AuditEventInput{Action: "login", Email: "a@x.com"})
	d.Record(ports.AuditEventInput{Action: "login", Email: "b@x.com"})
	d.Record(ports.AuditEventInput{Action: "register", Email: "c@x.com"})

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not processed in time")
	}
}

func TestDispatcher_SameActorKeepsOrder(t *testing.T) {
	svc := &collectingAuditService{done: make(chan struct{}), want: 10}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []string{"register", "login", "login", "login", "deactivate", "login", "login", "login", "login", "login"}
	for _, action := range actions {
		d.Record(ports.AuditEventInput{Action: action, Email: "ana@x.com"})
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not processed in time")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i, event := range svc.events {
		if event.Action != actions[i] {
			t.Fatalf("order broken at %d: got %s want %s", i, event.Action, actions[i])
		}
	}
}

func TestDispatcher_ShardIsStablePerEmail(t *testing.T) {
	d := NewDispatcher(8, &collectingAuditService{done: make(chan struct{}), want: 1}, zerolog.Nop())

	first := d.shardIndex("ana@x.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("ana@x.com") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
