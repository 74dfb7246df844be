// Package core defines errors shared across Embox features.
package core

import (
	"context"
	"errors"
	"net"
)

// Sentinel errors for the fault taxonomy. Callers wrap these with
// fmt.Errorf("...: %w", ...) to attach detail and match with errors.Is.
var (
	// ErrValidation indicates bad or missing caller input.
	ErrValidation = errors.New("invalid input")

	// ErrService indicates a remote collaborator was unreachable or
	// answered with a non-2xx status.
	ErrService = errors.New("remote service unavailable")

	// ErrParse indicates model output that does not match the expected
	// structure. This is a genuine fault and must stay visible.
	ErrParse = errors.New("malformed model output")
)

// IsTimeout reports whether err was caused by a deadline or network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
