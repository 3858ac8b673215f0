package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/collabhub/identity-service/internal/core/ports"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []ports.ResetDelivery
}

func (s *recordingSender) SendResetCode(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, ports.ResetDelivery{Email: email, Code: code})
	return nil
}

func (s *recordingSender) snapshot() []ports.ResetDelivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.ResetDelivery, len(s.sent))
	copy(out, s.sent)
	return out
}

func TestDispatcher_DeliversEnqueuedJobs(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(2, sender, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	jobs := []ports.ResetDelivery{
		{Email: "a@x.com", Code: "111111"},
		{Email: "b@x.com", Code: "222222"},
		{Email: "c@x.com", Code: "333333"},
	}
	for _, j := range jobs {
		d.Enqueue(j)
	}

	deadline := time.After(2 * time.Second)
	for {
		if len(sender.snapshot()) == len(jobs) {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out, delivered %d of %d", len(sender.snapshot()), len(jobs))
		case <-time.After(10 * time.Millisecond):
		}
	}

	seen := make(map[string]string)
	for _, j := range sender.snapshot() {
		seen[j.Email] = j.Code
	}
	for _, j := range jobs {
		if seen[j.Email] != j.Code {
			t.Fatalf("missing delivery for %s", j.Email)
		}
	}
}

func TestDispatcher_ShardIsStablePerRecipient(t *testing.T) {
	d := NewDispatcher(4, &recordingSender{}, zerolog.Nop())

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		first := d.shardIndex(email)
		for i := 0; i < 10; i++ {
			if d.shardIndex(email) != first {
				t.Fatalf("shard index unstable for %s", email)
			}
		}
	}
}
