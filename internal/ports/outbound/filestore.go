package outbound

import (
	"context"
	"io"
)

// FileStore persists uploaded files and returns the public URL they will be
// served from.
type FileStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}
