package models

import "time"

// Post is a portfolio entry. MediaURLs is a JSON-encoded array of uploaded
// object URLs, kept in the order the barber arranged them.
type Post struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Caption   string `gorm:"size:500" json:"caption"`
	MediaURLs string `gorm:"type:text" json:"media_urls"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
