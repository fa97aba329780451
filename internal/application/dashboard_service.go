package application

import (
	"context"

	"github.com/oksasatya/vidtube/internal/domain/entity"
	repo "github.com/oksasatya/vidtube/internal/domain/repository"
)

type DashboardService struct {
	Videos repo.VideoRepository
	Users  repo.UserRepository
	*Runtime
}

func NewDashboardService(videos repo.VideoRepository, users repo.UserRepository, rt *Runtime) *DashboardService {
	return &DashboardService{Videos: videos, Users: users, Runtime: rt}
}

func (s *DashboardService) ChannelStats(ctx context.Context, channelID string) (entity.ChannelStats, error) {
	channelID, err := ValidateID("channel", channelID)
	if err != nil {
		return entity.ChannelStats{}, err
	}
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if _, err := s.Users.GetByID(lctx, channelID); err != nil {
		return entity.ChannelStats{}, fromRepo(err, "channel")
	}
	stats, err := s.Videos.ChannelStats(lctx, channelID)
	if err != nil {
		return entity.ChannelStats{}, storageErr("failed to load channel stats", err)
	}
	return stats, nil
}

// ChannelVideos lists the channel's videos; unpublished ones only for the
// channel owner.
func (s *DashboardService) ChannelVideos(ctx context.Context, viewerID, channelID string) ([]entity.Video, error) {
	channelID, err := ValidateID("channel", channelID)
	if err != nil {
		return nil, err
	}
	lctx, cancel := s.storageCtx(ctx)
	defer cancel()
	if _, err := s.Users.GetByID(lctx, channelID); err != nil {
		return nil, fromRepo(err, "channel")
	}
	videos, err := s.Videos.ListByOwner(lctx, channelID)
	if err != nil {
		return nil, storageErr("failed to list channel videos", err)
	}
	if viewerID == channelID {
		return videos, nil
	}
	out := make([]entity.Video, 0, len(videos))
	for _, v := range videos {
		if v.IsPublished {
			out = append(out, v)
		}
	}
	return out, nil
}
