package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

type recordingMailer struct {
	mu    sync.Mutex
	sent  []ports.MailJob
	ready chan struct{}
}

func newRecordingMailer(expect int) *recordingMailer {
	return &recordingMailer{ready: make(chan struct{}, expect)}
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, text, html string) error {
	m.mu.Lock()
	m.sent = append(m.sent, ports.MailJob{To: to, Subject: subject, Text: text, HTML: html})
	m.mu.Unlock()
	m.ready <- struct{}{}
	return nil
}

func TestDispatcher_DeliversEnqueuedJobs(t *testing.T) {
	mailer := newRecordingMailer(2)
	d := NewDispatcher(2, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	jobs := []ports.MailJob{
		{To: "a@example.test", Subject: "one"},
		{To: "b@example.test", Subject: "two"},
	}
	for _, j := range jobs {
		if err := d.Enqueue(j); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	for range jobs {
		select {
		case <-mailer.ready:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery")
		}
	}

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.sent) != 2 {
		t.Fatalf("delivered %d jobs, want 2", len(mailer.sent))
	}
}

func TestDispatcher_EnqueueFailsFastWhenSaturated(t *testing.T) {
	// Never started: the single worker's buffer fills and stays full.
	d := NewDispatcher(1, newRecordingMailer(0), zerolog.Nop())

	var err error
	for i := 0; i <= channelBuffer; i++ {
		err = d.Enqueue(ports.MailJob{To: "a@example.test"})
		if err != nil {
			break
		}
	}
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestDispatcher_SameRecipientSameShard(t *testing.T) {
	d := NewDispatcher(8, newRecordingMailer(0), zerolog.Nop())

	first := d.shardIndex("alice@example.test")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("alice@example.test"); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
}
