package models

import "time"

// Booking is a surf-lesson reservation made through the public booking form.
// CountryID and SurfboardID are weak references resolved at the service
// layer; the schema declares no foreign keys for them.
type Booking struct {
	Model
	Name                   string    `json:"name" gorm:"type:varchar(100)"`
	Email                  string    `json:"email" gorm:"type:varchar(255)"`
	Phone                  string    `json:"phone" gorm:"type:varchar(32)"`
	CountryID              string    `json:"country_id" gorm:"type:varchar(36)"`
	SurfingExperience      int       `json:"surfing_experience"`
	Date                   time.Time `json:"date"`
	SurfboardID            string    `json:"surfboard_id" gorm:"type:varchar(36)"`
	NationalIDPhotoFileKey string    `json:"national_id_photo_file_key" gorm:"uniqueIndex;type:varchar(255)"`

	// NationalIDPhotoURL is derived from the file key on read; it is never
	// persisted.
	NationalIDPhotoURL string `json:"national_id_photo_url" gorm:"-"`
}
