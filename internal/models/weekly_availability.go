package models

import "time"

// WeeklyAvailability holds one open window per weekday. Times are HH:MM
// wall-clock strings in the barber's timezone; 00:00–00:00 means closed.
type WeeklyAvailability struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_barber_weekday" json:"barber_id"`

	DayOfWeek int `gorm:"uniqueIndex:idx_barber_weekday" json:"day_of_week"` // 0=Sunday .. 6=Saturday

	StartTime string `gorm:"size:8" json:"start_time"`
	EndTime   string `gorm:"size:8" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
