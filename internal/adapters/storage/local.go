package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocalFileStore persists uploads on the local disk and serves them under
// baseURL/uploads/. Stored names are sanitized and prefixed with a timestamp
// and a random token so uploads never collide or traverse paths.
type LocalFileStore struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

type LocalFileStoreParams struct {
	Dir     string
	BaseURL string
	Logger  zerolog.Logger
}

// NewLocalFileStore creates the upload directory if needed and returns the
// file store
func NewLocalFileStore(params LocalFileStoreParams) (*LocalFileStore, error) {
	if err := os.MkdirAll(params.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalFileStore{
		dir:     params.Dir,
		baseURL: strings.TrimRight(params.BaseURL, "/"),
		logger:  params.Logger.With().Str("component", "file_store").Logger(),
	}, nil
}

// Save stores the file and returns the public URL it is served from
func (s *LocalFileStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	name := storedName(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	s.logger.Info().
		Str("file", name).
		Int64("bytes", written).
		Msg("Upload stored")

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, name), nil
}

// storedName builds a unique on-disk name from the client-supplied one
func storedName(originalName string) string {
	ext := filepath.Ext(originalName)
	base := sanitizeBase(strings.TrimSuffix(filepath.Base(originalName), ext))

	token := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%d-%s-%s%s", time.Now().UnixMilli(), token, base, ext)
}

// sanitizeBase keeps only safe characters and bounds the length
func sanitizeBase(base string) string {
	if base == "" {
		base = "file"
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}

	out := b.String()
	if out == "" {
		out = "file"
	}
	if len(out) > 40 {
		out = out[:40]
	}
	return out
}
