package movie

import (
	"context"
	"errors"
	"fmt"
)

// Catalog is the outbound port to the external movie database.
type Catalog interface {
	// Configured reports whether the catalog holds a credential.
	Configured() bool

	Search(ctx context.Context, query string) ([]Summary, error)
	Popular(ctx context.Context) ([]Summary, error)
	Trending(ctx context.Context) ([]Summary, error)
	Upcoming(ctx context.Context) ([]Summary, error)
}

// FailureKind classifies why a catalog call produced no results.
type FailureKind string

const (
	FailureConfiguration FailureKind = "configuration"
	FailureTransport     FailureKind = "transport"
	FailureProtocol      FailureKind = "protocol"
	FailurePayload       FailureKind = "payload"
	FailureUnknown       FailureKind = "unknown"
)

var ErrNotConfigured = errors.New("credential not configured")

// CatalogError is returned by Catalog implementations for every failed call.
type CatalogError struct {
	Kind FailureKind
	Op   string

	// StatusCode and Status are set for protocol failures.
	StatusCode int
	Status     string

	Err error
}

func (e *CatalogError) Error() string {
	msg := fmt.Sprintf("catalog %s: %s failure", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d %s)", e.StatusCode, e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind carried by err.
func KindOf(err error) FailureKind {
	var ce *CatalogError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	if errors.Is(err, ErrNotConfigured) {
		return FailureConfiguration
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return FailureTransport
	}
	return FailureUnknown
}
