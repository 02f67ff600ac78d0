package ports

import (
	"context"
	"encoding/json"
)

// ImageSearcher looks up stock photos for a free-text query and returns the
// provider's JSON payload untouched.
type ImageSearcher interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
}
