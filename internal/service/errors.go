package service

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var ErrInvalidURL = errors.New("invalid article url")

const (
	reasonTimeout     = "The quiz service did not respond in time"
	reasonUnavailable = "Could not reach the quiz service"
)

// GatewayError is a failed call to the quiz service.
// Reason is safe to show to the user.
type GatewayError struct {
	Op     string
	Reason string
	Err    error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// reasoner is implemented by gateway errors that carry their own
// user-facing explanation.
type reasoner interface {
	Reason() string
}

func newGatewayError(op string, err error) *GatewayError {
	reason := reasonUnavailable

	var (
		r  reasoner
		ne net.Error
	)
	switch {
	case errors.As(err, &r) && r.Reason() != "":
		reason = r.Reason()
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		reason = reasonTimeout
	}

	return &GatewayError{Op: op, Reason: reason, Err: err}
}
