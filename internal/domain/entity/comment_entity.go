package entity

import "time"

type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	VideoID   string    `json:"video"`
	OwnerID   string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) OwnedBy() string { return c.OwnerID }
