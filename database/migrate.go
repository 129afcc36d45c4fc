package database

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const occupantIndex = "idx_tables_occupant"

// Migrate creates the schema and the occupancy index.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Reservation{},
		&models.Table{},
		&models.ReservationEvent{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := ensureOccupantIndex(db); err != nil {
		return fmt.Errorf("occupant index: %w", err)
	}

	if utils.InfoLogger != nil {
		utils.InfoLogger.Println("AutoMigrate completed.")
	}
	return nil
}

// ensureOccupantIndex makes a reservation seatable at one table at most.
func ensureOccupantIndex(db *gorm.DB) error {
	if db.Migrator().HasIndex(&models.Table{}, occupantIndex) {
		return nil
	}

	stmt := "CREATE UNIQUE INDEX " + occupantIndex + " ON tables (reservation_id)"
	switch db.Dialector.Name() {
	case "postgres", "sqlite":
		stmt += " WHERE reservation_id IS NOT NULL"
	}
	return db.Exec(stmt).Error
}

// SeedAdmin creates the first admin account when it does not exist yet.
func SeedAdmin(db *gorm.DB, email, password string) error {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	if utils.InfoLogger != nil {
		utils.InfoLogger.Printf("Seeded admin account %s", email)
	}
	return nil
}
