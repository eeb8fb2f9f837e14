package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is embedded by every entity: a UUID primary key plus creation,
// update, and soft-delete timestamps. Soft delete never removes the row;
// DeletedAt marks it logically removed.
type Model struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
