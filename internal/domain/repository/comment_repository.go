package repository

import (
	"context"

	"github.com/oksasatya/vidtube/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, id string) error
	// ListByVideo returns one page of comments, newest first, plus the total count.
	ListByVideo(ctx context.Context, videoID string, page, limit int) ([]entity.Comment, int64, error)
}

type TweetRepository interface {
	Create(ctx context.Context, t *entity.Tweet) error
	GetByID(ctx context.Context, id string) (*entity.Tweet, error)
	Update(ctx context.Context, t *entity.Tweet) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Tweet, error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, p *entity.Playlist) error
	GetByID(ctx context.Context, id string) (*entity.Playlist, error)
	Update(ctx context.Context, p *entity.Playlist) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Playlist, error)
}
