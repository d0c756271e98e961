package outbound

import (
	"context"

	"troffee-marketplace-service/internal/domain/shared"
)

// TokenVerifier validates a bearer credential and yields the caller identity.
// The identity provider itself is an external collaborator; this port keeps
// it swappable.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (shared.Identity, error)
}
