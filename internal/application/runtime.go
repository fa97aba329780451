package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vidtube/config"
	"github.com/oksasatya/vidtube/internal/domain/entity"
)

// JobPublisher puts JSON jobs on a named queue.
type JobPublisher interface {
	PublishTo(ctx context.Context, queue string, body any) error
}

// SearchIndex keeps a secondary full-text index of documents.
type SearchIndex interface {
	Index(ctx context.Context, index, id string, doc any) error
	Remove(ctx context.Context, index, id string) error
	Search(ctx context.Context, index, q string, fields []string, size int) ([]map[string]any, error)
}

// Runtime holds what every service shares: logging, call bounds and the
// optional job queue used for emails and orphaned assets.
type Runtime struct {
	Cfg            *config.Config
	Logger         *logrus.Logger
	StorageTimeout time.Duration
	UploadTimeout  time.Duration
	Jobs           JobPublisher
	EmailQueue     string
	CleanupQueue   string
}

func (r *Runtime) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r == nil || r.StorageTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.StorageTimeout)
}

func (r *Runtime) uploadCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r == nil || r.UploadTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.UploadTimeout)
}

// compensationTimeout bounds the detached context used to undo a saga.
func (r *Runtime) compensationTimeout() time.Duration {
	if r == nil || r.UploadTimeout <= 0 {
		return 30 * time.Second
	}
	return r.UploadTimeout
}

func (r *Runtime) log() *logrus.Entry {
	if r == nil || r.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		return logrus.NewEntry(l)
	}
	return logrus.NewEntry(r.Logger)
}

func (r *Runtime) publish(ctx context.Context, queue string, body any) {
	if r == nil || r.Jobs == nil || queue == "" {
		return
	}
	if err := r.Jobs.PublishTo(ctx, queue, body); err != nil {
		r.log().WithError(err).WithField("queue", queue).Warn("publish job failed")
	}
}

// reportOrphan queues an asset whose compensating delete failed.
func (r *Runtime) reportOrphan(ctx context.Context, asset entity.Asset, kind entity.AssetKind, cause error) {
	if r == nil {
		return
	}
	r.publish(ctx, r.CleanupQueue, entity.OrphanedAsset{
		ID:       asset.ID,
		Kind:     kind,
		Reason:   cause.Error(),
		FailedAt: time.Now().UTC(),
	})
}
