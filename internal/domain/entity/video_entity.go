package entity

import "time"

// Video references its media through two assets; both are required at creation.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   Asset     `json:"video_file"`
	Thumbnail   Asset     `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"is_published"`
	OwnerID     string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (v *Video) OwnedBy() string { return v.OwnerID }

// ChannelStats aggregates a channel's counters for the dashboard.
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalLikes       int64 `json:"total_likes"`
	TotalSubscribers int64 `json:"total_subscribers"`
}
