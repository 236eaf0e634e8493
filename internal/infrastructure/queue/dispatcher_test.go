package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

// recordingAudit collects every event handed to Record.
type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *recordingAudit) Record(_ context.Context, event domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingAudit) Recent(_ context.Context, _ int64) ([]domain.AuthEvent, error) {
	return nil, nil
}

func (r *recordingAudit) snapshot() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuthEvent, len(r.events))
	copy(out, r.events)
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
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	audit := &recordingAudit{}
	d := NewDispatcher(2, audit, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Enqueue(domain.AuthEvent{UserID: "user-1", Kind: domain.EventLogin})
	}

	waitFor(t, func() bool { return len(audit.snapshot()) == 10 })
}

func TestDispatcher_SameUserStaysOrdered(t *testing.T) {
	audit := &recordingAudit{}
	d := NewDispatcher(4, audit, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	kinds := []domain.AuthEventKind{
		domain.EventRegister,
		domain.EventLogin,
		domain.EventRefresh,
		domain.EventLogout,
	}
	for _, k := range kinds {
		d.Enqueue(domain.AuthEvent{UserID: "user-1", Kind: k})
	}

	waitFor(t, func() bool { return len(audit.snapshot()) == len(kinds) })

	got := audit.snapshot()
	for i, k := range kinds {
		if got[i].Kind != k {
			t.Fatalf("event %d: got %s, want %s", i, got[i].Kind, k)
		}
	}
}

func TestDispatcher_ShardIsStablePerUser(t *testing.T) {
	d := NewDispatcher(8, &recordingAudit{}, zerolog.Nop())

	for _, userID := range []string{"user-1", "user-2", ""} {
		first := d.shardIndex(userID)
		for i := 0; i < 5; i++ {
			if idx := d.shardIndex(userID); idx != first {
				t.Fatalf("shard for %q changed: %d vs %d", userID, first, idx)
			}
		}
	}
}

func TestDispatcher_DropsWhenBufferFull(t *testing.T) {
	audit := &recordingAudit{}
	d := NewDispatcher(1, audit, zerolog.Nop())
	// Workers never started: the shard buffer fills and overflow is dropped
	// instead of blocking the caller.
	for i := 0; i < channelBuffer+10; i++ {
		d.Enqueue(domain.AuthEvent{UserID: "user-1", Kind: domain.EventLogin})
	}

	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected full buffer of %d, got %d", channelBuffer, got)
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	audit := &recordingAudit{}
	d := NewDispatcher(1, audit, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue(domain.AuthEvent{UserID: "user-1", Kind: domain.EventLogin})
	waitFor(t, func() bool { return len(audit.snapshot()) == 1 })

	cancel()
	time.Sleep(20 * time.Millisecond)

	// Events enqueued after shutdown stay in the buffer unprocessed.
	d.Enqueue(domain.AuthEvent{UserID: "user-1", Kind: domain.EventLogout})
	time.Sleep(50 * time.Millisecond)
	if got := len(audit.snapshot()); got != 1 {
		t.Fatalf("worker still recording after cancel: %d events", got)
	}
}
