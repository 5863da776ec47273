package mail

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Dispatcher fans a batch of messages out to the Sender with bounded
// concurrency. A failed recipient is logged and skipped; it never aborts
// the rest of the batch.
type Dispatcher struct {
	sender Sender
	sem    chan struct{}
	logger *logrus.Logger
}

func NewDispatcher(sender Sender, maxConcurrent int, logger *logrus.Logger) *Dispatcher {
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Dispatcher{
		sender: sender,
		sem:    make(chan struct{}, maxConcurrent),
		logger: logger,
	}
}

// Broadcast sends the same subject/body to every recipient and waits for the
// batch to finish. It returns the number of failed deliveries.
func (d *Dispatcher) Broadcast(ctx context.Context, recipients []string, subject, html string) int {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)

	for _, to := range recipients {
		select {
		case <-ctx.Done():
			mu.Lock()
			failed++
			mu.Unlock()
			continue
		case d.sem <- struct{}{}:
		}

		wg.Add(1)
		go func(to string) {
			defer wg.Done()
			defer func() { <-d.sem }()

			if err := d.sender.Send(ctx, Message{To: to, Subject: subject, HTML: html}); err != nil {
				d.logger.WithField("recipient", to).Warnf("send mail: %v", err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(to)
	}

	wg.Wait()
	return failed
}

// Send delivers a single message synchronously.
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	return d.sender.Send(ctx, msg)
}
