package assets

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/internal/domain/repository"
)

// GCSStore keeps assets in a single Google Cloud Storage bucket. Objects
// are expected to be publicly readable through the bucket's IAM policy.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// dialGCS opens a storage client. An empty credsPath falls back to
// Application Default Credentials.
func dialGCS(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

func NewGCSStore(client *storage.Client, bucket string) (*GCSStore, error) {
	if client == nil || bucket == "" {
		return nil, errors.New("gcs storage: bucket is required")
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Upload(ctx context.Context, in repository.AssetUpload) (entity.Asset, error) {
	key := ObjectKey(in.Kind, in.OwnerID, in.Filename)
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = in.ContentType
	if in.Kind.IsImage() {
		w.CacheControl = "public, max-age=86400"
	}
	if _, err := io.Copy(w, in.Body); err != nil {
		_ = w.Close()
		return entity.Asset{}, fmt.Errorf("gcs storage upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return entity.Asset{}, fmt.Errorf("gcs storage upload %s: %w", key, err)
	}
	return entity.Asset{URL: fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key), ID: key}, nil
}

// Delete treats a missing object as already deleted.
func (s *GCSStore) Delete(ctx context.Context, assetID string, _ entity.AssetKind) error {
	err := s.client.Bucket(s.bucket).Object(assetID).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs storage delete %s: %w", assetID, err)
	}
	return nil
}

var _ repository.AssetStore = (*GCSStore)(nil)
