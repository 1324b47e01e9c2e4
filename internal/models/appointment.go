package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint    `gorm:"index" json:"barber_id"`
	Barber   Profile `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CustomerID uint    `gorm:"index" json:"customer_id"`
	Customer   Profile `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Absolute instant, stored UTC. DurationMin is copied from the service
	// at booking time so later service edits do not move booked windows.
	AppointmentTime time.Time `gorm:"index" json:"appointment_time"`
	DurationMin     int       `json:"duration_minutes"`

	Status        string `gorm:"size:20;default:'scheduled'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	// Stripe payment-intent id (or free_<uuid>); booking is idempotent on it.
	PaymentRef string `gorm:"size:100;uniqueIndex" json:"payment_ref"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) EndTime() time.Time {
	return a.AppointmentTime.Add(time.Duration(a.DurationMin) * time.Minute)
}
