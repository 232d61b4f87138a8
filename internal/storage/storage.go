package storage

import (
	"context"
	"io"
)

// Storage persists uploaded files (dream audio, avatars) and resolves
// public URLs for them. Keys are relative paths like "audio/<uuid>.mp3".
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error

	// URL returns the public URL the saved key is served under.
	URL(key string) string
}
