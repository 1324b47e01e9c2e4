package db

import (
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/barbera-app/barbera-api/internal/config"
	"github.com/barbera-app/barbera-api/internal/models"
)

// appointment_time migrates as timestamptz, so the range type must be
// tstzrange. One scheduled appointment per barber per window; cancelled
// and completed rows free the slot.
const appointmentsNoOverlapDDL = `
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            barber_id WITH =,
            tstzrange(
                appointment_time,
                appointment_time + (duration_min * interval '1 minute')
            ) WITH &&
        )
        WHERE (status = 'scheduled')
    `

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Service{},
		&models.WeeklyAvailability{},
		&models.Appointment{},
		&models.Post{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE profiles
        SET timezone = 'America/New_York'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// No two scheduled appointments for the same barber may overlap.
	// Enforced here, at write time, because the slot computation is only
	// advisory and two customers can race on the same slot. Booting
	// without the constraint would silently reopen that race, so any
	// failure besides "already exists" is fatal.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	if err := db.Exec(appointmentsNoOverlapDDL).Error; err != nil && !isDuplicateObject(err) {
		log.Fatalf("failed to create appointments_no_overlap constraint: %v", err)
	}

	return db
}

// isDuplicateObject matches the rejection of re-adding an existing
// constraint on a subsequent boot (42710).
func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42710"
}
