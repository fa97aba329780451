package entity

import "time"

// AssetKind classifies a binary object held in the external asset store.
type AssetKind string

const (
	AssetVideo     AssetKind = "video"
	AssetThumbnail AssetKind = "thumbnail"
	AssetAvatar    AssetKind = "avatar"
	AssetCover     AssetKind = "cover"
)

// IsImage reports whether objects of this kind are still images.
func (k AssetKind) IsImage() bool {
	return k == AssetThumbnail || k == AssetAvatar || k == AssetCover
}

// Asset is a durable reference to an uploaded object: its public URL and
// the store-internal id used to delete it.
type Asset struct {
	URL string `json:"url"`
	ID  string `json:"asset_id"`
}

func (a Asset) IsZero() bool { return a.ID == "" && a.URL == "" }

// OrphanedAsset is queued when a compensating delete fails so a worker can retry it.
type OrphanedAsset struct {
	ID       string    `json:"asset_id"`
	Kind     AssetKind `json:"kind"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}
