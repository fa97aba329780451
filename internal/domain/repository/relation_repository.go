package repository

import (
	"context"

	"github.com/oksasatya/vidtube/internal/domain/entity"
)

// LikeRepository stores the (user, target) like relation. Create must return
// ErrConflict when the pair already exists.
type LikeRepository interface {
	Find(ctx context.Context, userID string, target entity.LikeTarget) (*entity.Like, error)
	Create(ctx context.Context, l *entity.Like) error
	Delete(ctx context.Context, id string) error
	ListLikedVideos(ctx context.Context, userID string) ([]entity.Video, error)
}

// SubscriptionRepository stores the (subscriber, channel) relation. Create must
// return ErrConflict when the pair already exists.
type SubscriptionRepository interface {
	Find(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error)
	Create(ctx context.Context, s *entity.Subscription) error
	Delete(ctx context.Context, id string) error
	ListSubscribers(ctx context.Context, channelID string) ([]entity.Channel, error)
	ListChannels(ctx context.Context, subscriberID string) ([]entity.Channel, error)
}
