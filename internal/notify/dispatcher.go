package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher sends messages in the background. Dispatch returns at once; a
// delivery failure is logged at warn level and discarded.
type Dispatcher struct {
	mailer  Mailer
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(mailer Mailer, log *zap.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{mailer: mailer, log: log, timeout: timeout}
}

// Dispatch queues msg for delivery. The caller's cancellation does not reach
// the send; only the dispatcher timeout bounds it. After Close the message is
// dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.log.Warn("notification dropped after shutdown", zap.String("subject", msg.Subject), zap.String("to", msg.To))
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	go func() {
		defer d.wg.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("notification panicked", zap.Any("panic", r), zap.String("subject", msg.Subject))
			}
		}()

		if err := d.mailer.Send(ctx, msg); err != nil {
			d.log.Warn("notification not delivered",
				zap.String("subject", msg.Subject),
				zap.String("to", msg.To),
				zap.Error(err))
			return
		}
		d.log.Debug("notification delivered", zap.String("subject", msg.Subject), zap.String("to", msg.To))
	}()
}

// Close stops accepting messages and blocks until every dispatched message
// has finished.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
