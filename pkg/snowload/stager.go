package snowload

import (
	"context"
	"io"
)

// ObjectStager uploads a file's raw bytes to intermediate object storage
// before the warehouse load. The staged object is consumed by the bulk-load
// command, which also deletes it on successful load (PURGE); the stager never
// deletes objects itself.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type ObjectStager interface {
	// Stage writes body to the configured bucket under key.
	Stage(ctx context.Context, key string, body io.Reader) error
}
