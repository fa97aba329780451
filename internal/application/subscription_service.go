package application

import (
	"context"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	repo "github.com/oksasatya/vidtube/internal/domain/repository"
)

type SubscriptionService struct {
	Repo  repo.SubscriptionRepository
	Users repo.UserRepository
	*Runtime
}

func NewSubscriptionService(subs repo.SubscriptionRepository, users repo.UserRepository, rt *Runtime) *SubscriptionService {
	return &SubscriptionService{Repo: subs, Users: users, Runtime: rt}
}

// Toggle subscribes actorID to channelID, or unsubscribes if already
// subscribed. Subscribing to yourself is rejected.
func (s *SubscriptionService) Toggle(ctx context.Context, actorID, channelID string) (ToggleResult, error) {
	channelID, err := ValidateID("channel", channelID)
	if err != nil {
		return ToggleResult{}, err
	}
	if sameID(channelID, actorID) {
		return ToggleResult{}, invalidArg("cannot subscribe to your own channel")
	}

	var channel *entity.User
	res, err := toggle(ctx, s.Runtime, toggler[*entity.Subscription]{
		kind:   "channel",
		target: channelID,
		exists: func(ctx context.Context) error {
			u, err := s.Users.GetByID(ctx, channelID)
			channel = u
			return err
		},
		find: func(ctx context.Context) (*entity.Subscription, error) {
			return s.Repo.Find(ctx, actorID, channelID)
		},
		remove: func(ctx context.Context, sub *entity.Subscription) error {
			return s.Repo.Delete(ctx, sub.ID)
		},
		create: func(ctx context.Context) (*entity.Subscription, error) {
			sub := &entity.Subscription{ChannelID: channelID, SubscriberID: actorID}
			return sub, s.Repo.Create(ctx, sub)
		},
	})
	if err != nil {
		return res, err
	}

	if res.Active && channel != nil {
		if subscriber, uErr := s.Users.GetByID(ctx, actorID); uErr == nil {
			s.sendNewSubscriber(ctx, channel, subscriber)
		}
	}
	return res, nil
}

func (s *SubscriptionService) Subscribers(ctx context.Context, channelID string) ([]entity.Channel, error) {
	channelID, err := ValidateID("channel", channelID)
	if err != nil {
		return nil, err
	}
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if _, err := s.Users.GetByID(lctx, channelID); err != nil {
		return nil, fromRepo(err, "channel")
	}
	out, err := s.Repo.ListSubscribers(lctx, channelID)
	if err != nil {
		return nil, storageErr("failed to list subscribers", err)
	}
	return out, nil
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID string) ([]entity.Channel, error) {
	subscriberID, err := ValidateID("subscriber", subscriberID)
	if err != nil {
		return nil, err
	}
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if _, err := s.Users.GetByID(lctx, subscriberID); err != nil {
		return nil, fromRepo(err, "subscriber")
	}
	out, err := s.Repo.ListChannels(lctx, subscriberID)
	if err != nil {
		return nil, storageErr("failed to list subscriptions", err)
	}
	return out, nil
}
