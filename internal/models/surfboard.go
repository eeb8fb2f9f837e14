package models

// Surfboard is a reference-settings entity. Name is unique among non-deleted
// rows, enforced by an unconditional unique index plus a soft-delete-aware
// lookup on the write path.
type Surfboard struct {
	Model
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(100)"`
}
