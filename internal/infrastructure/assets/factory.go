package assets

import (
	"context"
	"fmt"

	"github.com/oksasatya/vidtube/config"
	"github.com/oksasatya/vidtube/internal/domain/repository"
)

// FromConfig builds the store selected by ASSET_DRIVER. The returned func
// releases the underlying client.
func FromConfig(ctx context.Context, cfg *config.Config) (repository.AssetStore, func(), error) {
	switch cfg.AssetDriver {
	case "s3":
		s, err := NewS3Store(ctx, S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case "gcs", "":
		client, err := dialGCS(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, nil, err
		}
		s, err := NewGCSStore(client, cfg.GCSBucket)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return s, func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown ASSET_DRIVER %q", cfg.AssetDriver)
	}
}
