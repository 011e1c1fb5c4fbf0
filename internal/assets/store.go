// Package assets handles externally hosted media: the store client that
// uploads and deletes binaries, and the lifecycle coordinator that keeps
// stored assets in step with the database records referencing them.
package assets

import (
	"context"
	"io"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Upload size limits, enforced at the boundary accepting the binary before
// the store client is invoked.
const (
	MaxImageSize = 200 << 20 // 200MB
	MaxVideoSize = 1 << 30   // 1GB
)

// Ref identifies one stored asset: the durable URL records embed, and the
// opaque public ID required to delete the asset later.
type Ref struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Store is the asset store client. Both operations may fail independently
// of the database.
type Store interface {
	Upload(ctx context.Context, r io.Reader, kind Kind) (Ref, error)
	Delete(ctx context.Context, publicID string, kind Kind) error
}
