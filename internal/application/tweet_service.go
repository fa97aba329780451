package application

import (
	"context"
	"strings"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	repo "github.com/oksasatya/vidtube/internal/domain/repository"
)

type TweetService struct {
	Repo  repo.TweetRepository
	Users repo.UserRepository
	*Runtime
}

func NewTweetService(tweets repo.TweetRepository, users repo.UserRepository, rt *Runtime) *TweetService {
	return &TweetService{Repo: tweets, Users: users, Runtime: rt}
}

func (s *TweetService) Create(ctx context.Context, actorID, content string) (*entity.Tweet, error) {
	if blank(content) {
		return nil, invalidArg("content is required")
	}
	t := &entity.Tweet{Content: strings.TrimSpace(content), OwnerID: actorID}
	if err := persist(ctx, s.Runtime, "tweet", func(ctx context.Context) error { return s.Repo.Create(ctx, t) }); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TweetService) ListByUser(ctx context.Context, userID string) ([]entity.Tweet, error) {
	userID, err := ValidateID("user", userID)
	if err != nil {
		return nil, err
	}
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if _, err := s.Users.GetByID(lctx, userID); err != nil {
		return nil, fromRepo(err, "user")
	}
	tweets, err := s.Repo.ListByOwner(lctx, userID)
	if err != nil {
		return nil, storageErr("failed to list tweets", err)
	}
	return tweets, nil
}

func (s *TweetService) Update(ctx context.Context, actorID, id, content string) (*entity.Tweet, error) {
	if blank(content) {
		return nil, invalidArg("content is required")
	}
	return mutateOwned(ctx, s.Runtime, "tweet", id, actorID, s.Repo.GetByID, func(ctx context.Context, t *entity.Tweet) error {
		t.Content = strings.TrimSpace(content)
		return persist(ctx, s.Runtime, "tweet", func(ctx context.Context) error { return s.Repo.Update(ctx, t) })
	})
}

func (s *TweetService) Delete(ctx context.Context, actorID, id string) error {
	_, err := mutateOwned(ctx, s.Runtime, "tweet", id, actorID, s.Repo.GetByID, func(ctx context.Context, t *entity.Tweet) error {
		return persist(ctx, s.Runtime, "tweet", func(ctx context.Context) error { return s.Repo.Delete(ctx, t.ID) })
	})
	return err
}
