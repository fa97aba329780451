package repository

import (
	"context"
	"io"

	"github.com/oksasatya/vidtube/internal/domain/entity"
)

// AssetUpload is one binary object to place in the asset store.
type AssetUpload struct {
	Kind        entity.AssetKind
	OwnerID     string
	Filename    string
	ContentType string
	Body        io.Reader
}

// AssetStore is the external blob namespace keyed by asset id.
type AssetStore interface {
	Upload(ctx context.Context, in AssetUpload) (entity.Asset, error)
	Delete(ctx context.Context, assetID string, kind entity.AssetKind) error
}
