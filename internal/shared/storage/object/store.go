package object

import (
	"context"
	"io"
)

// Object describes a stored binary payload.
type Object struct {
	// Key is the store-internal identifier used for later deletion.
	Key string
	// URL is a stable address from which the object can be fetched.
	URL       string
	SizeBytes int64
	MimeType  string
}

// ObjectStore defines the contract for saving and removing binary objects.
// Keys are namespaced by owning user and upload time.
type ObjectStore interface {
	Upload(ctx context.Context, userID string, fileName string, r io.Reader) (Object, error)
	Delete(ctx context.Context, key string) error
}
