package app

import (
	"context"

	"troffee-marketplace-service/internal/domain/shared"
)

// requireOwner fetches a record and authorizes the caller as its owner. The
// fetch error passes through unchanged when the record does not exist, so
// "not found" stays distinct from "forbidden". Used before every mutating
// operation.
func requireOwner[T any](ctx context.Context, callerID string, fetch func(context.Context) (T, error), ownerOf func(T) string) (T, error) {
	rec, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if ownerOf(rec) != callerID {
		var zero T
		return zero, shared.ErrForbidden
	}

	return rec, nil
}
