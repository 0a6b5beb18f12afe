package cast

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magmaskv/casttompv/internal/config"
	"github.com/magmaskv/casttompv/internal/logging"
)

// Task is one in-flight request started by Dispatch.
// Tasks are independent: starting another while one runs does not queue
// or cancel anything.
type Task struct {
	ID        string
	Endpoint  Endpoint
	StartedAt time.Time

	cancel context.CancelFunc
	done   chan struct{}
	result *Result
	err    error
}

// Dispatch starts Send on its own goroutine and returns immediately.
// cfg and req are copied, so the caller may change them afterwards.
func (c *Client) Dispatch(ctx context.Context, cfg *config.Config, req *Request) *Task {
	ctx, cancel := context.WithCancel(ctx)

	var reqCopy *Request
	if req != nil {
		r := *req
		reqCopy = &r
	}
	cfgCopy := &config.Config{}
	if cfg != nil {
		cfgCopy = cfg.Clone()
	}

	t := &Task{
		ID:        newTaskID(),
		StartedAt: time.Now(),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	if reqCopy != nil {
		t.Endpoint = reqCopy.Endpoint
	}

	logging.Debug("Cast task dispatched",
		zap.String("task_id", t.ID),
		zap.String("endpoint", string(t.Endpoint)),
	)

	go func() {
		defer close(t.done)
		defer cancel()
		t.result, t.err = c.Send(ctx, cfgCopy, reqCopy)
	}()

	return t
}

// Done is closed when the request has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the request finishes and returns its outcome.
func (t *Task) Wait() (*Result, error) {
	<-t.done
	return t.result, t.err
}

// Cancel aborts the request if it is still running.
func (t *Task) Cancel() {
	t.cancel()
}

// newTaskID returns a time-ordered UUIDv7, falling back to a timestamp.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("task-%d", time.Now().UnixNano())
	}
	return id.String()
}
