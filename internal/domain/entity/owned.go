package entity

// Owned is implemented by every entity that only its creator may mutate.
type Owned interface {
	OwnedBy() string
}
