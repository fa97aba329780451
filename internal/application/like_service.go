package application

import (
	"context"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	repo "github.com/oksasatya/vidtube/internal/domain/repository"
)

type LikeService struct {
	Repo     repo.LikeRepository
	Videos   repo.VideoRepository
	Comments repo.CommentRepository
	Tweets   repo.TweetRepository
	*Runtime
}

func NewLikeService(likes repo.LikeRepository, videos repo.VideoRepository, comments repo.CommentRepository, tweets repo.TweetRepository, rt *Runtime) *LikeService {
	return &LikeService{Repo: likes, Videos: videos, Comments: comments, Tweets: tweets, Runtime: rt}
}

func (s *LikeService) ToggleVideoLike(ctx context.Context, actorID, videoID string) (ToggleResult, error) {
	return s.toggle(ctx, actorID, entity.TargetVideo, videoID, func(ctx context.Context, id string) error {
		_, err := s.Videos.GetByID(ctx, id)
		return err
	})
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, actorID, commentID string) (ToggleResult, error) {
	return s.toggle(ctx, actorID, entity.TargetComment, commentID, func(ctx context.Context, id string) error {
		_, err := s.Comments.GetByID(ctx, id)
		return err
	})
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, actorID, tweetID string) (ToggleResult, error) {
	return s.toggle(ctx, actorID, entity.TargetTweet, tweetID, func(ctx context.Context, id string) error {
		_, err := s.Tweets.GetByID(ctx, id)
		return err
	})
}

// Liking your own content is allowed.
func (s *LikeService) toggle(ctx context.Context, actorID string, kind entity.TargetKind, rawID string, exists func(ctx context.Context, id string) error) (ToggleResult, error) {
	id, err := ValidateID(string(kind), rawID)
	if err != nil {
		return ToggleResult{}, err
	}
	target, err := entity.ParseLikeTarget(string(kind), id)
	if err != nil {
		return ToggleResult{}, invalidArg(err.Error())
	}
	return toggle(ctx, s.Runtime, toggler[*entity.Like]{
		kind:   string(kind),
		target: id,
		exists: func(ctx context.Context) error { return exists(ctx, id) },
		find: func(ctx context.Context) (*entity.Like, error) {
			return s.Repo.Find(ctx, actorID, target)
		},
		remove: func(ctx context.Context, l *entity.Like) error {
			return s.Repo.Delete(ctx, l.ID)
		},
		create: func(ctx context.Context) (*entity.Like, error) {
			l := &entity.Like{Target: target, LikedBy: actorID}
			return l, s.Repo.Create(ctx, l)
		},
	})
}

func (s *LikeService) LikedVideos(ctx context.Context, actorID string) ([]entity.Video, error) {
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	videos, err := s.Repo.ListLikedVideos(lctx, actorID)
	if err != nil {
		return nil, storageErr("failed to list liked videos", err)
	}
	return videos, nil
}
