package mailer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// WelcomeSender is implemented by Mailer.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// Dispatcher sends welcome emails in the background. Sends are detached from
// the triggering request, bounded by a timeout, and their failures are only
// logged.
type Dispatcher struct {
	sender  WelcomeSender
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(sender WelcomeSender, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, timeout: timeout, logger: logger}
}

// Welcome schedules a welcome email and returns immediately.
func (d *Dispatcher) Welcome(to, name string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("welcome email panicked", zap.Any("panic", r), zap.String("to", to))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sender.SendWelcome(ctx, to, name); err != nil {
			d.logger.Warn("failed to send welcome email", zap.String("to", to), zap.Error(err))
		}
	}()
}

// Wait blocks until in-flight sends finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
