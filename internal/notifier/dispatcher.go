package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
)

var (
	ErrQueueFull        = errors.New("notification queue is full")
	ErrDispatcherClosed = errors.New("notification dispatcher is shut down")
)

type job struct {
	id      string
	title   string
	message string
}

// Dispatcher delivers notifications on a background goroutine so callers
// never wait on the tray. Delivery is best effort: failed attempts are
// retried a few times and then logged.
type Dispatcher struct {
	target      Notifier
	queue       chan job
	maxAttempts int
	retryDelay  time.Duration

	mu     sync.Mutex
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

type DispatcherOption func(*Dispatcher)

// WithRetries sets how many times a notification is attempted and the pause
// between attempts.
func WithRetries(attempts int, delay time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if attempts > 0 {
			d.maxAttempts = attempts
		}
		if delay >= 0 {
			d.retryDelay = delay
		}
	}
}

func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan job, n)
		}
	}
}

func NewDispatcher(target Notifier, opts ...DispatcherOption) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		target:      target,
		queue:       make(chan job, constants.NotifyQueueSize),
		maxAttempts: constants.NotifyMaxRetries,
		retryDelay:  constants.NotifyRetryDelay,
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	go d.run()
	return d
}

// Notify queues a notification and returns immediately.
func (d *Dispatcher) Notify(title, message string) error {
	j := job{id: uuid.NewString(), title: title, message: message}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	select {
	case d.queue <- j:
		logger.Debug("Notification queued", "id", j.id)
		return nil
	default:
		logger.Warn("Dropping notification, queue is full", "id", j.id)
		return ErrQueueFull
	}
}

// Shutdown stops accepting notifications and waits for queued ones to be
// delivered. If ctx ends first, pending retries are abandoned.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-d.done
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for j := range d.queue {
		if d.ctx.Err() != nil {
			logger.Warn("Notification abandoned at shutdown", "id", j.id)
			continue
		}
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	var err error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if err = d.attempt(j); err == nil {
			logger.Info("Notification delivered", "id", j.id, "attempt", attempt)
			return
		}
		logger.Debug("Notification attempt failed", "id", j.id, "attempt", attempt, "error", err)
		if attempt == d.maxAttempts {
			break
		}
		select {
		case <-time.After(d.retryDelay):
		case <-d.ctx.Done():
			logger.Warn("Notification abandoned at shutdown", "id", j.id, "error", err)
			return
		}
	}
	logger.Warn("Notification failed", "id", j.id, "attempts", d.maxAttempts, "error", err)
}

func (d *Dispatcher) attempt(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panicked: %v", r)
		}
	}()
	return d.target.Notify(j.title, j.message)
}
