package models

// UserPassword holds the bcrypt hash for a User. The pair is 1:1 by
// convention only; there is no foreign key in the schema, so the auth
// service keeps both rows' lifecycles in sync manually.
type UserPassword struct {
	Model
	UserID string `json:"user_id" gorm:"index;type:varchar(36)"`
	Hash   string `json:"-" gorm:"type:varchar(255)"` // never the plaintext
}
