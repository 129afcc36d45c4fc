package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func findReservation(ctx context.Context, db *gorm.DB, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := db.WithContext(ctx).First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Reservation ID %d does not exist.", id)
		}
		return nil, fmt.Errorf("read reservation %d: %w", id, err)
	}
	return &reservation, nil
}

func findTable(ctx context.Context, db *gorm.DB, id uint) (*models.Table, error) {
	var table models.Table
	if err := db.WithContext(ctx).First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Table %d does not exist", id)
		}
		return nil, fmt.Errorf("read table %d: %w", id, err)
	}
	return &table, nil
}

// forUpdate locks the rows it reads until the transaction ends. Drivers
// without row locks ignore the clause.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
