package analyses

import (
	"context"
	"io"
	"time"
)

// Repository port (interface untuk persistence)
type Repository interface {
	Insert(ctx context.Context, in *Input) (*Analysis, error)
	ListByOwner(ctx context.Context, owner string) ([]*Analysis, error)
	Get(ctx context.Context, owner string, id AnalysisID) (*Analysis, error)
}

// ImageStore port (interface untuk penyimpanan gambar daun)
type ImageStore interface {
	// Put stores the image and returns its key ({owner}/{unixMillis}_{filename}).
	Put(ctx context.Context, owner, filename string, size int64, r io.Reader) (string, error)
	// SignedURL issues a time-limited read URL for a stored key.
	SignedURL(ctx context.Context, imagePath string, ttl time.Duration) (string, error)
}
