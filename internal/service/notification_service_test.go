package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingMailer struct {
	mu    sync.Mutex
	sent  []string
	err   error
	block chan struct{}
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return m.err
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestNotificationDispatcher_DeliversBeforeStop(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewNotificationDispatcher(mailer, 2, 10, quietLogger())

	d.Notify("a@example.com", "Welcome", "hi")
	d.Notify("b@example.com", "Welcome", "hi")
	d.Stop()

	assert.Equal(t, 2, mailer.count())
}

func TestNotificationDispatcher_FailureIsSwallowed(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	d := NewNotificationDispatcher(mailer, 1, 1, quietLogger())

	assert.NotPanics(t, func() { d.Notify("a@example.com", "Welcome", "hi") })
	d.Stop()
	assert.Equal(t, 1, mailer.count())
}

func TestNotificationDispatcher_NeverBlocks(t *testing.T) {
	mailer := &recordingMailer{block: make(chan struct{})}
	d := NewNotificationDispatcher(mailer, 1, 1, quietLogger())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Notify("a@example.com", "Welcome", "hi")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked with a full queue")
	}

	close(mailer.block)
	d.Stop()
	assert.LessOrEqual(t, mailer.count(), 2)
}

func TestNotificationDispatcher_NotifyAfterStop(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewNotificationDispatcher(mailer, 1, 1, quietLogger())
	d.Stop()
	d.Stop()

	assert.NotPanics(t, func() { d.Notify("a@example.com", "Welcome", "hi") })
	assert.Equal(t, 0, mailer.count())
}
