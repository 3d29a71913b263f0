package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const notificationSendTimeout = 15 * time.Second

// Mailer delivers one message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Notifier is fire-and-forget: it never blocks the caller and never reports
// delivery failures back.
type Notifier interface {
	Notify(to, subject, body string)
}

type notification struct {
	to      string
	subject string
	body    string
}

// NotificationDispatcher fans queued notifications out to a fixed worker
// pool. When the queue is full the notification is dropped and logged.
type NotificationDispatcher struct {
	mailer Mailer
	log    *logrus.Logger
	queue  chan notification

	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped atomic.Bool
}

func NewNotificationDispatcher(mailer Mailer, workers, queueSize int, log *logrus.Logger) *NotificationDispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	d := &NotificationDispatcher{
		mailer: mailer,
		log:    log,
		queue:  make(chan notification, queueSize),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

func (d *NotificationDispatcher) Notify(to, subject, body string) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped.Load() {
		d.log.Warnf("Notification to %s dropped: dispatcher stopped", to)
		return
	}

	select {
	case d.queue <- notification{to: to, subject: subject, body: body}:
	default:
		d.log.Warnf("Notification to %s dropped: queue full", to)
	}
}

// Stop drains the queue and waits for in-flight sends. Safe to call multiple times.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if !d.stopped.CompareAndSwap(false, true) {
		d.mu.Unlock()
		return
	}
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	d.log.Info("NotificationDispatcher stopped")
}

func (d *NotificationDispatcher) worker() {
	defer d.wg.Done()

	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *NotificationDispatcher) deliver(n notification) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Errorf("Notification to %s panicked: %v", n.to, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), notificationSendTimeout)
	defer cancel()

	if err := d.mailer.Send(ctx, n.to, n.subject, n.body); err != nil {
		d.log.Warnf("Failed to send notification to %s: %+v", n.to, err)
		return
	}
	d.log.WithField("to", n.to).Debug("Notification sent")
}
