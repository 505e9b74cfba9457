package interfaces

import "context"

// MediaUploader stores a local file on a remote media host and returns a
// durable public URL. Implementations must not retry; a failed upload is
// surfaced immediately as an error.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
