package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/acquisitions/accounts-api/internal/core/domain"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *recordingAuditService) Record(_ context.Context, event domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingAuditService) snapshot() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	svc := &recordingAuditService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.AuditEvent{Action: domain.AuditSignup, Subject: "a@x.com"})
	d.Enqueue(domain.AuditEvent{Action: domain.AuditSignin, Subject: "b@x.com"})

	waitFor(t, func() bool { return len(svc.snapshot()) == 2 })
}

func TestDispatcher_PreservesPerSubjectOrder(t *testing.T) {
	svc := &recordingAuditService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []string{
		domain.AuditSignup,
		domain.AuditSignin,
		domain.AuditUserUpdated,
		domain.AuditUserDeleted,
	}
	for _, a := range actions {
		d.Enqueue(domain.AuditEvent{Action: a, Subject: "same@x.com"})
	}

	waitFor(t, func() bool { return len(svc.snapshot()) == len(actions) })

	got := svc.snapshot()
	for i, a := range actions {
		if got[i].Action != a {
			t.Fatalf("event %d: expected %q, got %q", i, a, got[i].Action)
		}
	}
}

func TestDispatcher_SameSubjectSameShard(t *testing.T) {
	d := NewDispatcher(8, &recordingAuditService{}, zerolog.Nop())

	first := d.shardIndex("carol@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("carol@example.com") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
