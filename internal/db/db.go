package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fadecrew/barbershop-api/internal/config"
	"github.com/fadecrew/barbershop-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.Slot{},
		&models.Booking{},
		&models.BookingService{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// Last line of defence against double bookings: no two busy windows
	// for the same barber may overlap. Released rows (cancelled
	// bookings) stay out of the constraint.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`ALTER TABLE slots DROP CONSTRAINT IF EXISTS slots_busy_no_overlap`)
	if err := db.Exec(`
        ALTER TABLE slots
        ADD CONSTRAINT slots_busy_no_overlap
        EXCLUDE USING gist (
            barber_id WITH =,
            tstzrange(start_time, end_time) WITH &&
        ) WHERE (is_booked OR is_blocked)
    `).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to create slot exclusion constraint")
	}

	return db
}
