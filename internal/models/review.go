package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID   uint `gorm:"index" json:"barber_id"`
	CustomerID uint `json:"customer_id"`

	AppointmentID uint `gorm:"uniqueIndex" json:"appointment_id"`

	Rating  int    `json:"rating"` // 1..5
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
