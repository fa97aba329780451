package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// TargetKind names the kind of entity a Like points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// LikeTarget is a closed variant over video, comment and tweet. The zero
// value is invalid; build one through VideoTarget, CommentTarget,
// TweetTarget or ParseLikeTarget so exactly one target is always set.
type LikeTarget struct {
	kind TargetKind
	id   string
}

func VideoTarget(id string) LikeTarget   { return LikeTarget{kind: TargetVideo, id: id} }
func CommentTarget(id string) LikeTarget { return LikeTarget{kind: TargetComment, id: id} }
func TweetTarget(id string) LikeTarget   { return LikeTarget{kind: TargetTweet, id: id} }

// ParseLikeTarget rebuilds a target from its stored form.
func ParseLikeTarget(kind, id string) (LikeTarget, error) {
	switch TargetKind(kind) {
	case TargetVideo, TargetComment, TargetTweet:
		return LikeTarget{kind: TargetKind(kind), id: id}, nil
	}
	return LikeTarget{}, fmt.Errorf("unknown like target kind %q", kind)
}

func (t LikeTarget) Kind() TargetKind { return t.kind }
func (t LikeTarget) ID() string       { return t.id }
func (t LikeTarget) Valid() bool      { return t.kind != "" && t.id != "" }

func (t LikeTarget) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{string(t.kind): t.id})
}

type Like struct {
	ID        string     `json:"id"`
	Target    LikeTarget `json:"target"`
	LikedBy   string     `json:"liked_by"`
	CreatedAt time.Time  `json:"created_at"`
}
