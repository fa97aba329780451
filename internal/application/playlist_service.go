package application

import (
	"context"
	"strings"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	repo "github.com/oksasatya/vidtube/internal/domain/repository"
)

type PlaylistService struct {
	Repo   repo.PlaylistRepository
	Videos repo.VideoRepository
	Users  repo.UserRepository
	*Runtime
}

func NewPlaylistService(playlists repo.PlaylistRepository, videos repo.VideoRepository, users repo.UserRepository, rt *Runtime) *PlaylistService {
	return &PlaylistService{Repo: playlists, Videos: videos, Users: users, Runtime: rt}
}

func (s *PlaylistService) Create(ctx context.Context, actorID, name, description string) (*entity.Playlist, error) {
	if blank(name) {
		return nil, invalidArg("name is required")
	}
	p := &entity.Playlist{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		VideoIDs:    []string{},
		OwnerID:     actorID,
	}
	if err := persist(ctx, s.Runtime, "playlist", func(ctx context.Context) error { return s.Repo.Create(ctx, p) }); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PlaylistService) Get(ctx context.Context, id string) (*entity.Playlist, error) {
	id, err := ValidateID("playlist", id)
	if err != nil {
		return nil, err
	}
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	p, err := s.Repo.GetByID(lctx, id)
	if err != nil {
		return nil, fromRepo(err, "playlist")
	}
	return p, nil
}

func (s *PlaylistService) ListByUser(ctx context.Context, userID string) ([]entity.Playlist, error) {
	userID, err := ValidateID("user", userID)
	if err != nil {
		return nil, err
	}
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if _, err := s.Users.GetByID(lctx, userID); err != nil {
		return nil, fromRepo(err, "user")
	}
	out, err := s.Repo.ListByOwner(lctx, userID)
	if err != nil {
		return nil, storageErr("failed to list playlists", err)
	}
	return out, nil
}

func (s *PlaylistService) Update(ctx context.Context, actorID, id, name, description string) (*entity.Playlist, error) {
	if blank(name) && blank(description) {
		return nil, invalidArg("name or description is required")
	}
	return mutateOwned(ctx, s.Runtime, "playlist", id, actorID, s.Repo.GetByID, func(ctx context.Context, p *entity.Playlist) error {
		if !blank(name) {
			p.Name = strings.TrimSpace(name)
		}
		if !blank(description) {
			p.Description = strings.TrimSpace(description)
		}
		return persist(ctx, s.Runtime, "playlist", func(ctx context.Context) error { return s.Repo.Update(ctx, p) })
	})
}

func (s *PlaylistService) Delete(ctx context.Context, actorID, id string) error {
	_, err := mutateOwned(ctx, s.Runtime, "playlist", id, actorID, s.Repo.GetByID, func(ctx context.Context, p *entity.Playlist) error {
		return persist(ctx, s.Runtime, "playlist", func(ctx context.Context) error { return s.Repo.Delete(ctx, p.ID) })
	})
	return err
}

// AddVideo appends videoID; a video may appear in a playlist more than once.
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID string) (*entity.Playlist, error) {
	videoID, err := ValidateID("video", videoID)
	if err != nil {
		return nil, err
	}
	return mutateOwned(ctx, s.Runtime, "playlist", playlistID, actorID, s.Repo.GetByID, func(ctx context.Context, p *entity.Playlist) error {
		if err := persist(ctx, s.Runtime, "video", func(ctx context.Context) error {
			_, err := s.Videos.GetByID(ctx, videoID)
			return err
		}); err != nil {
			return err
		}
		p.VideoIDs = append(p.VideoIDs, videoID)
		return persist(ctx, s.Runtime, "playlist", func(ctx context.Context) error { return s.Repo.Update(ctx, p) })
	})
}

// RemoveVideo drops the first occurrence of videoID.
func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) (*entity.Playlist, error) {
	videoID, err := ValidateID("video", videoID)
	if err != nil {
		return nil, err
	}
	return mutateOwned(ctx, s.Runtime, "playlist", playlistID, actorID, s.Repo.GetByID, func(ctx context.Context, p *entity.Playlist) error {
		if !p.RemoveFirst(videoID) {
			return notFound("video not in playlist")
		}
		return persist(ctx, s.Runtime, "playlist", func(ctx context.Context) error { return s.Repo.Update(ctx, p) })
	})
}
