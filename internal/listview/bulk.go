package listview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cristianoliveira/listkit/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ErrBusy is returned when a bulk action is started while another one runs.
var ErrBusy = errors.New("bulk action already running")

// DefaultConcurrency bounds the number of in-flight operations of one bulk action.
const DefaultConcurrency = 8

// Status is the state of a bulk action coordinator.
type Status int

const (
	Idle Status = iota
	Running
	Completed
	CompletedPartial
	Failed
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case CompletedPartial:
		return "partial"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Terminal reports whether s is a finished state.
func (s Status) Terminal() bool {
	return s == Completed || s == CompletedPartial || s == Failed
}

// Op is the per-item operation of a bulk action.
type Op[ID comparable] func(ctx context.Context, id ID) error

// Outcome is the result of one item: Err is nil on success.
type Outcome[ID comparable] struct {
	ID       ID
	Err      error
	Attempts int
}

// OK reports whether the item succeeded.
func (o Outcome[ID]) OK() bool {
	return o.Err == nil
}

// Result aggregates the outcomes of one bulk action, in input order.
type Result[ID comparable] struct {
	Outcomes  []Outcome[ID]
	Succeeded int
	Failed    int
	Status    Status
	Canceled  bool
}

// SucceededIDs returns the ids whose operation succeeded.
func (r Result[ID]) SucceededIDs() []ID {
	return r.ids(true)
}

// FailedIDs returns the ids whose operation failed.
func (r Result[ID]) FailedIDs() []ID {
	return r.ids(false)
}

func (r Result[ID]) ids(ok bool) []ID {
	out := make([]ID, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.OK() == ok {
			out = append(out, o.ID)
		}
	}
	return out
}

// FirstError returns the first item error, or nil.
func (r Result[ID]) FirstError() error {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return o.Err
		}
	}
	return nil
}

// Message summarizes the result for a toast, e.g. Message("delete", "products").
func (r Result[ID]) Message(action, noun string) string {
	total := r.Succeeded + r.Failed
	if total == 0 {
		return fmt.Sprintf("nothing to %s", action)
	}
	msg := ""
	switch r.Status {
	case Completed:
		msg = fmt.Sprintf("%s succeeded for all %d %s", action, total, noun)
	case CompletedPartial:
		msg = fmt.Sprintf("%s succeeded for %d of %d %s; %d failed", action, r.Succeeded, total, noun, r.Failed)
	default:
		msg = fmt.Sprintf("%s failed for all %d %s", action, total, noun)
	}
	if r.Canceled {
		msg += " (canceled)"
	}
	return msg
}

// RetryPolicy decides whether a failed item is tried again.
// attempt is the number of attempts already made.
type RetryPolicy interface {
	Backoff(attempt int, err error) (time.Duration, bool)
}

// NoRetry never retries.
type NoRetry struct{}

// Backoff implements RetryPolicy.
func (NoRetry) Backoff(int, error) (time.Duration, bool) {
	return 0, false
}

// FixedRetry retries up to Attempts total attempts, waiting Delay between them.
type FixedRetry struct {
	Attempts int
	Delay    time.Duration
}

// Backoff implements RetryPolicy.
func (p FixedRetry) Backoff(attempt int, _ error) (time.Duration, bool) {
	if attempt >= p.Attempts {
		return 0, false
	}
	return p.Delay, true
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*coordinatorOptions)

type coordinatorOptions struct {
	concurrency int
	retry       RetryPolicy
	logger      logging.Logger
}

// WithConcurrency bounds in-flight operations; 0 or less means unbounded.
func WithConcurrency(n int) CoordinatorOption {
	return func(o *coordinatorOptions) {
		o.concurrency = n
	}
}

// WithRetry sets the retry policy.
func WithRetry(p RetryPolicy) CoordinatorOption {
	return func(o *coordinatorOptions) {
		if p != nil {
			o.retry = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) CoordinatorOption {
	return func(o *coordinatorOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Coordinator runs bulk actions over selected ids, one at a time.
type Coordinator[ID comparable] struct {
	mu     sync.Mutex
	status Status
	last   *Result[ID]
	opts   coordinatorOptions
}

// NewCoordinator creates an idle coordinator.
func NewCoordinator[ID comparable](opts ...CoordinatorOption) *Coordinator[ID] {
	o := coordinatorOptions{
		concurrency: DefaultConcurrency,
		retry:       NoRetry{},
		logger:      logging.GetGlobal(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Coordinator[ID]{opts: o}
}

// Status returns the current state.
func (c *Coordinator[ID]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Last returns the result of the last finished run.
func (c *Coordinator[ID]) Last() (Result[ID], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Result[ID]{}, false
	}
	return *c.last, true
}

// Dismiss acknowledges a finished run and returns to Idle.
// It returns false while a run is in progress.
func (c *Coordinator[ID]) Dismiss() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == Running {
		return false
	}
	c.status = Idle
	c.last = nil
	return true
}

// Run applies op to every id concurrently and collects one outcome per id.
// A failing item never stops the others. When ctx is canceled no further
// items are started and the unstarted ones fail with the context error.
func (c *Coordinator[ID]) Run(ctx context.Context, ids []ID, op Op[ID]) (Result[ID], error) {
	if op == nil {
		return Result[ID]{}, fmt.Errorf("bulk action: op is nil")
	}
	c.mu.Lock()
	if c.status == Running {
		c.mu.Unlock()
		return Result[ID]{}, ErrBusy
	}
	c.status = Running
	c.last = nil
	c.mu.Unlock()

	log := c.opts.logger.With("component", "bulk")
	log.Debug("bulk action started", "items", len(ids), "concurrency", c.opts.concurrency)
	started := time.Now()

	outcomes := make([]Outcome[ID], len(ids))
	var g errgroup.Group
	if c.opts.concurrency > 0 {
		g.SetLimit(c.opts.concurrency)
	}
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			outcomes[i] = Outcome[ID]{ID: id, Err: err}
			continue
		}
		g.Go(func() error {
			// The slot may have been granted after cancellation.
			if err := ctx.Err(); err != nil {
				outcomes[i] = Outcome[ID]{ID: id, Err: err}
				return nil
			}
			outcomes[i] = c.runOne(ctx, id, op)
			return nil
		})
	}
	_ = g.Wait()

	res := Result[ID]{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.OK() {
			res.Succeeded++
			continue
		}
		res.Failed++
		if errors.Is(o.Err, context.Canceled) || errors.Is(o.Err, context.DeadlineExceeded) {
			res.Canceled = true
		}
	}
	switch {
	case res.Failed == 0:
		res.Status = Completed
	case res.Succeeded == 0:
		res.Status = Failed
	default:
		res.Status = CompletedPartial
	}

	c.mu.Lock()
	c.status = res.Status
	c.last = &res
	c.mu.Unlock()

	log.Info("bulk action finished",
		"status", res.Status.String(),
		"succeeded", res.Succeeded,
		"failed", res.Failed,
		"canceled", res.Canceled,
		"duration", time.Since(started).String())
	return res, nil
}

func (c *Coordinator[ID]) runOne(ctx context.Context, id ID, op Op[ID]) (out Outcome[ID]) {
	out.ID = id
	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("bulk action panicked: %v", r)
		}
	}()
	for {
		out.Attempts++
		err := op(ctx, id)
		if err == nil {
			out.Err = nil
			return out
		}
		out.Err = err
		if IsPermanent(err) || ctx.Err() != nil {
			return out
		}
		delay, again := c.opts.retry.Backoff(out.Attempts, err)
		if !again {
			return out
		}
		c.opts.logger.Debug("retrying bulk item", "id", fmt.Sprint(id), "attempt", out.Attempts, "error", err.Error())
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return out
		case <-timer.C:
		}
	}
}
