package assets

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	"github.com/oksasatya/vidtube/internal/domain/repository"
)

// S3Config selects the bucket and, for MinIO and friends, a custom endpoint.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

// S3Store keeps assets in an S3-compatible bucket.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
	region   string
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if strings.TrimSpace(cfg.Endpoint) != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 8 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return &S3Store{
		client:   client,
		uploader: uploader,
		bucket:   cfg.Bucket,
		baseURL:  strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		region:   cfg.Region,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, in repository.AssetUpload) (entity.Asset, error) {
	key := ObjectKey(in.Kind, in.OwnerID, in.Filename)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   in.Body,
		ACL:    s3types.ObjectCannedACLPublicRead,
	}
	if in.ContentType != "" {
		input.ContentType = aws.String(in.ContentType)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return entity.Asset{}, fmt.Errorf("s3 storage upload %s: %w", key, err)
	}
	return entity.Asset{URL: s.publicURL(key), ID: key}, nil
}

// Delete is idempotent: S3 reports success for keys that do not exist.
func (s *S3Store) Delete(ctx context.Context, assetID string, _ entity.AssetKind) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		return fmt.Errorf("s3 storage delete %s: %w", assetID, err)
	}
	return nil
}

func (s *S3Store) publicURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

var _ repository.AssetStore = (*S3Store)(nil)
