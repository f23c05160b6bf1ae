// Package notification tells staff about new orders over chat.
package notification

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sender delivers a text message to one chat target
type Sender interface {
	Send(ctx context.Context, target, text string) error
}

// Status summarizes a fan-out
type Status string

const (
	StatusSent    Status = "sent"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Message is a notification body
type Message struct {
	Text string
}

// TargetError is the failure for one chat target
type TargetError struct {
	Target string `json:"target"`
	Error  string `json:"error"`
}

// Result reports what a Dispatch achieved
type Result struct {
	Status Status        `json:"status"`
	Sent   int           `json:"sent"`
	Failed int           `json:"failed"`
	Errors []TargetError `json:"errors,omitempty"`
}

// Dispatcher fans a message out to every configured target at once.
// Sends are never retried.
type Dispatcher struct {
	sender  Sender
	targets []string
	logger  *zap.Logger
}

// NewDispatcher creates a Dispatcher. A nil sender or an empty target list
// makes every Dispatch a no-op reporting StatusSkipped.
func NewDispatcher(sender Sender, targets []string, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	cleaned := make([]string, 0, len(targets))
	for _, t := range targets {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return &Dispatcher{
		sender:  sender,
		targets: cleaned,
		logger:  logger,
	}
}

// Enabled reports whether Dispatch would send anything
func (d *Dispatcher) Enabled() bool {
	return d.sender != nil && len(d.targets) > 0
}

// Dispatch sends msg to all targets concurrently and waits for every send
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) Result {
	if !d.Enabled() {
		return Result{Status: StatusSkipped}
	}

	var (
		mu     sync.Mutex
		result Result
		g      errgroup.Group
	)
	for _, target := range d.targets {
		g.Go(func() error {
			err := d.sender.Send(ctx, target, msg.Text)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, TargetError{Target: target, Error: err.Error()})
				return nil
			}
			result.Sent++
			return nil
		})
	}
	_ = g.Wait()

	switch {
	case result.Failed == 0:
		result.Status = StatusSent
	case result.Sent == 0:
		result.Status = StatusFailed
	default:
		result.Status = StatusPartial
	}
	return result
}
