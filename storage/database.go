package storage

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/anemettemadsen33/RentHub-sub010/config"
	"github.com/anemettemadsen33/RentHub-sub010/models"
)

var DB *gorm.DB

func connectToDB(cfg *config.Config) *gorm.DB {
	db, dbError := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Booking{},
		&models.BlockedDate{},
		&models.CustomPrice{},
		&models.Review{},
		&models.Notification{},
		&models.AuditLog{},
	)

	// Last line of defense against double booking: a date-range exclusion
	// constraint over active bookings on the same property. The application
	// checks availability inside an advisory-locked transaction first; this
	// constraint catches anything that slips through.
	db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist;")
	db.Exec(`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (
				property_id WITH =,
				daterange(check_in::date, check_out::date) WITH &&
			) WHERE (status IN ('confirmed', 'checked_in', 'checked_out') AND deleted_at IS NULL);
		END IF;
	END $$;`)
}

func InitializeDB(cfg *config.Config) *gorm.DB {
	db := connectToDB(cfg)
	performMigrations(db)
	return db
}
