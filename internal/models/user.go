package models

// User represents an account holder. The email unique index is unconditional,
// so a soft-deleted user still blocks reuse of its email unless the row is
// restored instead of re-inserted.
type User struct {
	Model
	FirstName string  `json:"first_name" gorm:"type:varchar(100)"`
	LastName  *string `json:"last_name" gorm:"type:varchar(100)"`
	Email     string  `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
}
