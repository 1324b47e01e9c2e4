package models

import "time"

const (
	RoleBarber   = "barber"
	RoleCustomer = "customer"
)

type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Role     string `gorm:"size:20;default:'customer'" json:"role"`
	Bio      string `gorm:"size:500" json:"bio"`
	Location string `gorm:"size:100" json:"location"`

	AvatarURL string `gorm:"size:255" json:"avatar_url"`

	// IANA name used to anchor the weekly schedule's wall-clock times.
	Timezone string `gorm:"size:50" json:"timezone"`

	StripeAccountID string `gorm:"size:100" json:"stripe_account_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
