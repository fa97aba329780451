package entity

import "time"

type Subscription struct {
	ID           string    `json:"id"`
	ChannelID    string    `json:"channel"`
	SubscriberID string    `json:"subscriber"`
	CreatedAt    time.Time `json:"created_at"`
}
