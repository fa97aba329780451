package application

import (
	"context"
	"strings"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	repo "github.com/oksasatya/vidtube/internal/domain/repository"
)

type CommentService struct {
	Repo   repo.CommentRepository
	Videos repo.VideoRepository
	*Runtime
}

func NewCommentService(comments repo.CommentRepository, videos repo.VideoRepository, rt *Runtime) *CommentService {
	return &CommentService{Repo: comments, Videos: videos, Runtime: rt}
}

type CommentPage struct {
	Comments []entity.Comment `json:"comments"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

// ListByVideo returns the video's comments newest first.
func (s *CommentService) ListByVideo(ctx context.Context, videoID string, page, limit int) (*CommentPage, error) {
	videoID, err := ValidateID("video", videoID)
	if err != nil {
		return nil, err
	}
	page, limit = clampPage(page, limit)
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if _, err := s.Videos.GetByID(lctx, videoID); err != nil {
		return nil, fromRepo(err, "video")
	}
	comments, total, err := s.Repo.ListByVideo(lctx, videoID, page, limit)
	if err != nil {
		return nil, storageErr("failed to list comments", err)
	}
	return &CommentPage{Comments: comments, Total: total, Page: page, Limit: limit}, nil
}

func (s *CommentService) Add(ctx context.Context, actorID, videoID, content string) (*entity.Comment, error) {
	if blank(content) {
		return nil, invalidArg("content is required")
	}
	videoID, err := ValidateID("video", videoID)
	if err != nil {
		return nil, err
	}
	c := &entity.Comment{Content: strings.TrimSpace(content), VideoID: videoID, OwnerID: actorID}
	err = persist(ctx, s.Runtime, "video", func(ctx context.Context) error {
		if _, err := s.Videos.GetByID(ctx, videoID); err != nil {
			return err
		}
		return s.Repo.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, actorID, id, content string) (*entity.Comment, error) {
	if blank(content) {
		return nil, invalidArg("content is required")
	}
	return mutateOwned(ctx, s.Runtime, "comment", id, actorID, s.Repo.GetByID, func(ctx context.Context, c *entity.Comment) error {
		c.Content = strings.TrimSpace(content)
		return persist(ctx, s.Runtime, "comment", func(ctx context.Context) error { return s.Repo.Update(ctx, c) })
	})
}

func (s *CommentService) Delete(ctx context.Context, actorID, id string) error {
	_, err := mutateOwned(ctx, s.Runtime, "comment", id, actorID, s.Repo.GetByID, func(ctx context.Context, c *entity.Comment) error {
		return persist(ctx, s.Runtime, "comment", func(ctx context.Context) error { return s.Repo.Delete(ctx, c.ID) })
	})
	return err
}
