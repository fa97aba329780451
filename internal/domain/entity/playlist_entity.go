package entity

import "time"

// Playlist keeps an ordered list of video ids; the same video may appear more than once.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoIDs    []string  `json:"videos"`
	OwnerID     string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Playlist) OwnedBy() string { return p.OwnerID }

// RemoveFirst drops the first occurrence of videoID and reports whether one was found.
func (p *Playlist) RemoveFirst(videoID string) bool {
	for i, id := range p.VideoIDs {
		if id == videoID {
			p.VideoIDs = append(p.VideoIDs[:i:i], p.VideoIDs[i+1:]...)
			return true
		}
	}
	return false
}
