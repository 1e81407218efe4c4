package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrPermissionDenied means the caller tried to touch a record that
	// does not belong to the authenticated owner. It is surfaced verbatim
	// and never retried; the fix is access configuration, not a retry.
	ErrPermissionDenied = errors.New("permission denied: record belongs to another user")

	// ErrUnavailable means the store could not be reached or the write
	// could not be applied (I/O failure, lock contention past the busy
	// timeout). The caller may retry manually; the adapter never does.
	ErrUnavailable = errors.New("store unavailable")

	// ErrProfileNotFound means an update targeted a profile that was
	// never created.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists means a create raced with an earlier create for
	// the same uid.
	ErrProfileExists = errors.New("profile already exists")
)

type ownerKey struct{}

// WithOwner attaches the authenticated owner to the context. Repositories
// reject any access to a different owner's rows, mirroring a per-user
// document security rule.
func WithOwner(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, ownerKey{}, uid)
}

// OwnerFrom returns the authenticated owner, or "" when none is attached
// (trusted local callers such as the CLI).
func OwnerFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ownerKey{}).(string); ok {
		return v
	}
	return ""
}

// authorize checks the requested owner against the authenticated one.
func authorize(ctx context.Context, ownerID string) error {
	auth := OwnerFrom(ctx)
	if auth != "" && auth != ownerID {
		return ErrPermissionDenied
	}
	return nil
}

// mapDBErr wraps driver-level failures as ErrUnavailable so callers can
// distinguish "try again" from permission and domain errors.
func mapDBErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
