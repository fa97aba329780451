package application

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	repo "github.com/oksasatya/vidtube/internal/domain/repository"
)

type VideoService struct {
	Repo  repo.VideoRepository
	Media *Media
	// CascadeDelete removes a video's comments and likes together with it.
	CascadeDelete bool
	Search        SearchIndex
	VideosIndex   string
	*Runtime
}

func NewVideoService(videos repo.VideoRepository, media *Media, cascade bool, search SearchIndex, videosIndex string, rt *Runtime) *VideoService {
	return &VideoService{
		Repo:          videos,
		Media:         media,
		CascadeDelete: cascade,
		Search:        search,
		VideosIndex:   videosIndex,
		Runtime:       rt,
	}
}

type PublishVideoInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *Upload
	Thumbnail   *Upload
}

// Publish uploads the video file and thumbnail, then stores the video. If
// either upload or the insert fails, everything uploaded so far is deleted.
func (s *VideoService) Publish(ctx context.Context, actorID string, in PublishVideoInput) (*entity.Video, error) {
	if blank(in.Title) || blank(in.Description) {
		return nil, invalidArg("title and description are required")
	}
	if math.IsNaN(in.Duration) || math.IsInf(in.Duration, 0) || in.Duration < 0 {
		return nil, invalidArg("duration must be a finite, non-negative number")
	}
	if !in.VideoFile.present() {
		return nil, invalidArg("video file is required")
	}
	if !in.Thumbnail.present() {
		return nil, invalidArg("thumbnail is required")
	}

	v := &entity.Video{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Duration:    in.Duration,
		IsPublished: true,
		OwnerID:     actorID,
	}

	saga := NewSaga(s.Runtime)
	if err := s.Media.uploadAll(ctx, s.Runtime, saga, actorID,
		assetPart{kind: entity.AssetVideo, upload: in.VideoFile, dst: &v.VideoFile},
		assetPart{kind: entity.AssetThumbnail, upload: in.Thumbnail, dst: &v.Thumbnail},
	); err != nil {
		saga.Compensate(ctx)
		return nil, err
	}

	if err := persist(ctx, s.Runtime, "video", func(ctx context.Context) error { return s.Repo.Create(ctx, v) }); err != nil {
		saga.Compensate(ctx)
		s.log().WithError(err).WithField("owner_id", actorID).Error("create video failed")
		return nil, storageErr("failed to save video", err)
	}

	s.indexVideo(ctx, v)
	return v, nil
}

// Get returns a video. Unpublished videos are visible to their owner only;
// every read by someone else counts as a view.
func (s *VideoService) Get(ctx context.Context, viewerID, id string) (*entity.Video, error) {
	id, err := ValidateID("video", id)
	if err != nil {
		return nil, err
	}
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	v, err := s.Repo.GetByID(lctx, id)
	if err != nil {
		return nil, fromRepo(err, "video")
	}
	if !v.IsPublished && v.OwnerID != viewerID {
		return nil, notFound("video not found")
	}
	if viewerID != v.OwnerID {
		views, err := s.Repo.IncrementViews(lctx, id)
		if err != nil {
			s.log().WithError(err).WithField("video_id", id).Warn("increment views failed")
		} else {
			v.Views = views
		}
	}
	return v, nil
}

type ListVideosInput struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

type VideoPage struct {
	Videos []entity.Video `json:"videos"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

func (s *VideoService) List(ctx context.Context, viewerID string, in ListVideosInput) (*VideoPage, error) {
	if in.UserID != "" {
		id, err := ValidateID("user", in.UserID)
		if err != nil {
			return nil, err
		}
		in.UserID = id
	}
	page, limit := clampPage(in.Page, in.Limit)
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	videos, total, err := s.Repo.List(lctx, repo.VideoFilter{
		Query:    in.Query,
		OwnerID:  in.UserID,
		ViewerID: viewerID,
		SortBy:   in.SortBy,
		SortDesc: !strings.EqualFold(in.SortType, "asc"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, storageErr("failed to list videos", err)
	}
	return &VideoPage{Videos: videos, Total: total, Page: page, Limit: limit}, nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return page, limit
}

// SearchVideos queries the full-text index of published videos.
func (s *VideoService) SearchVideos(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if blank(q) {
		return nil, invalidArg("query is required")
	}
	if s.Search == nil || s.VideosIndex == "" {
		return []map[string]any{}, nil
	}
	hits, err := s.Search.Search(ctx, s.VideosIndex, q, []string{"title^2", "description"}, size)
	if err != nil {
		return nil, storageErr("video search failed", err)
	}
	return hits, nil
}

type UpdateVideoInput struct {
	Title       string
	Description string
	VideoFile   *Upload
	Thumbnail   *Upload
}

func (in UpdateVideoInput) empty() bool {
	return blank(in.Title) && blank(in.Description) && !in.VideoFile.present() && !in.Thumbnail.present()
}

// Update changes text fields and replaces media. New files are uploaded and
// persisted before the files they replace are deleted, so the stored video
// never points at a deleted asset.
func (s *VideoService) Update(ctx context.Context, actorID, id string, in UpdateVideoInput) (*entity.Video, error) {
	if in.empty() {
		return nil, invalidArg("nothing to update")
	}
	return mutateOwned(ctx, s.Runtime, "video", id, actorID, s.Repo.GetByID, func(ctx context.Context, v *entity.Video) error {
		var (
			parts    []assetPart
			replaced []entity.Asset
			kinds    []entity.AssetKind
			newFile  entity.Asset
			newThumb entity.Asset
		)
		if in.VideoFile.present() {
			parts = append(parts, assetPart{kind: entity.AssetVideo, upload: in.VideoFile, dst: &newFile})
		}
		if in.Thumbnail.present() {
			parts = append(parts, assetPart{kind: entity.AssetThumbnail, upload: in.Thumbnail, dst: &newThumb})
		}

		saga := NewSaga(s.Runtime)
		if len(parts) > 0 {
			if err := s.Media.uploadAll(ctx, s.Runtime, saga, actorID, parts...); err != nil {
				saga.Compensate(ctx)
				return err
			}
		}

		prev := *v
		if !blank(in.Title) {
			v.Title = strings.TrimSpace(in.Title)
		}
		if !blank(in.Description) {
			v.Description = strings.TrimSpace(in.Description)
		}
		if in.VideoFile.present() {
			replaced, kinds = append(replaced, v.VideoFile), append(kinds, entity.AssetVideo)
			v.VideoFile = newFile
		}
		if in.Thumbnail.present() {
			replaced, kinds = append(replaced, v.Thumbnail), append(kinds, entity.AssetThumbnail)
			v.Thumbnail = newThumb
		}

		if err := persist(ctx, s.Runtime, "video", func(ctx context.Context) error { return s.Repo.Update(ctx, v) }); err != nil {
			*v = prev
			saga.Compensate(ctx)
			return storageErr("failed to update video", err)
		}

		for i, a := range replaced {
			_ = s.Media.remove(ctx, s.Runtime, a, kinds[i])
		}
		s.indexVideo(ctx, v)
		return nil
	})
}

// Delete removes the video row first and its media afterwards. Media that
// cannot be deleted is queued for cleanup; the video is gone either way.
func (s *VideoService) Delete(ctx context.Context, actorID, id string) error {
	_, err := mutateOwned(ctx, s.Runtime, "video", id, actorID, s.Repo.GetByID, func(ctx context.Context, v *entity.Video) error {
		if err := persist(ctx, s.Runtime, "video", func(ctx context.Context) error {
			return s.Repo.Delete(ctx, v.ID, s.CascadeDelete)
		}); err != nil {
			return err
		}
		_ = s.Media.remove(ctx, s.Runtime, v.VideoFile, entity.AssetVideo)
		_ = s.Media.remove(ctx, s.Runtime, v.Thumbnail, entity.AssetThumbnail)
		s.unindexVideo(ctx, v.ID)
		return nil
	})
	return err
}

func (s *VideoService) TogglePublish(ctx context.Context, actorID, id string) (*entity.Video, error) {
	return mutateOwned(ctx, s.Runtime, "video", id, actorID, s.Repo.GetByID, func(ctx context.Context, v *entity.Video) error {
		v.IsPublished = !v.IsPublished
		if err := persist(ctx, s.Runtime, "video", func(ctx context.Context) error { return s.Repo.Update(ctx, v) }); err != nil {
			v.IsPublished = !v.IsPublished
			return err
		}
		s.indexVideo(ctx, v)
		return nil
	})
}

func (s *VideoService) indexVideo(ctx context.Context, v *entity.Video) {
	if s.Search == nil || s.VideosIndex == "" {
		return
	}
	if !v.IsPublished {
		s.unindexVideo(ctx, v.ID)
		return
	}
	doc := map[string]any{
		"id":            v.ID,
		"title":         v.Title,
		"description":   v.Description,
		"thumbnail_url": v.Thumbnail.URL,
		"duration":      v.Duration,
		"owner":         v.OwnerID,
		"created_at":    v.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := s.Search.Index(ctx, s.VideosIndex, v.ID, doc); err != nil {
		s.log().WithError(err).WithField("video_id", v.ID).Warn("es index failed")
	}
}

func (s *VideoService) unindexVideo(ctx context.Context, id string) {
	if s.Search == nil || s.VideosIndex == "" {
		return
	}
	if err := s.Search.Remove(ctx, s.VideosIndex, id); err != nil {
		s.log().WithError(err).WithField("video_id", id).Warn("es delete failed")
	}
}
