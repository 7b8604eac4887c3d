package api

import (
	"errors"
	"fmt"
)

var (
	ErrUpstreamTimeout    = errors.New("clash royale api did not answer in time")
	ErrClanNotFound       = errors.New("clan not found")
	ErrInvalidCredentials = errors.New("clash royale api token invalid or expired")
	ErrRateLimited        = errors.New("clash royale api rate limit reached")
)

// UpstreamError covers every non-2xx answer that has no dedicated sentinel,
// and transport failures (Status 0).
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("clash royale api transport failure: %v", e.Err)
	}
	return fmt.Sprintf("clash royale api error: status %d", e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func statusError(status int) error {
	switch status {
	case 404:
		return ErrClanNotFound
	case 403:
		return ErrInvalidCredentials
	case 429:
		return ErrRateLimited
	default:
		return &UpstreamError{Status: status}
	}
}
