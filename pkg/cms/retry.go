package cms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retrying repeats a failed request once when the failure looks transient.
type Retrying struct {
	next Executor
	wait time.Duration
}

// NewRetrying wraps next with a single bounded retry after wait.
func NewRetrying(next Executor, wait time.Duration) *Retrying {
	return &Retrying{next: next, wait: wait}
}

// Do runs the request, retrying at most once.
func (r *Retrying) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	var data json.RawMessage
	op := func() error {
		var err error
		data, err = r.next.Do(ctx, req)
		if err != nil && !transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(r.wait), 1), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return data, nil
}

// transient reports whether err is worth one more attempt: transport
// failures, rate limiting and server errors.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}
	var gqlErr *GraphQLError
	if errors.As(err, &gqlErr) || errors.Is(err, ErrEmptyData) {
		return false
	}
	return true
}
