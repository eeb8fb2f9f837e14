package models

// Country is a reference-settings entity used by bookings through a weak
// reference (no foreign key declared in the schema).
type Country struct {
	Model
	Name     string `json:"name" gorm:"type:varchar(100)"`
	Code     string `json:"code" gorm:"type:varchar(8)"`
	DialCode string `json:"dial_code" gorm:"type:varchar(8)"`
	Unicode  string `json:"unicode" gorm:"type:varchar(32)"`
	Emoji    string `json:"emoji" gorm:"type:varchar(16)"`
}
