package repository

import (
	"context"

	"github.com/oksasatya/vidtube/internal/domain/entity"
)

// VideoFilter drives the public video listing.
type VideoFilter struct {
	Query    string
	OwnerID  string
	ViewerID string // unpublished videos are only listed for their owner
	SortBy   string // created_at, views, duration, title
	SortDesc bool
	Page     int
	Limit    int
}

type VideoRepository interface {
	Create(ctx context.Context, v *entity.Video) error
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	Update(ctx context.Context, v *entity.Video) error
	// Delete removes the video row. With cascade it also removes the video's
	// comments and every like on the video or on those comments, atomically.
	Delete(ctx context.Context, id string, cascade bool) error
	IncrementViews(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, f VideoFilter) ([]entity.Video, int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Video, error)
	ChannelStats(ctx context.Context, ownerID string) (entity.ChannelStats, error)
}
