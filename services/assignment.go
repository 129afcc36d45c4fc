package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/validators"
	"gorm.io/gorm"
)

// AssignmentEngine seats parties at tables and frees them again. Each
// operation writes the reservation status and the table occupant in one
// transaction, after re-checking the preconditions against locked rows.
type AssignmentEngine struct {
	db *gorm.DB
}

func NewAssignmentEngine(db *gorm.DB) *AssignmentEngine {
	return &AssignmentEngine{db: db}
}

// Seat marks the reservation seated and makes it the table's occupant.
func (e *AssignmentEngine) Seat(ctx context.Context, reservationID, tableID uint) (*models.Table, error) {
	var table models.Table

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, err := findReservation(ctx, forUpdate(tx), reservationID)
		if err != nil {
			return err
		}
		if err := validators.Run(reservation, validators.SeatReservationChecks()...); err != nil {
			return err
		}

		current, err := findTable(ctx, forUpdate(tx), tableID)
		if err != nil {
			return err
		}
		candidate := validators.SeatCandidate{Reservation: reservation, Table: current}
		if err := validators.Run(candidate, validators.SeatTableChecks()...); err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Reservation{}).
			Where("reservation_id = ? AND status = ?", reservationID, models.StatusBooked).
			Updates(map[string]interface{}{"status": models.StatusSeated, "updated_at": now})
		if res.Error != nil {
			return fmt.Errorf("seat reservation %d: %w", reservationID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrReservationNotSeatable
		}

		res = tx.Model(&models.Table{}).
			Where("table_id = ? AND reservation_id IS NULL", tableID).
			Updates(map[string]interface{}{"reservation_id": reservationID, "updated_at": now})
		if res.Error != nil {
			return fmt.Errorf("occupy table %d: %w", tableID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTableOccupied
		}

		if err := tx.First(&table, tableID).Error; err != nil {
			return fmt.Errorf("reload table %d: %w", tableID, err)
		}
		reservation.Status = models.StatusSeated
		reservation.UpdatedAt = now
		return recordEvent(tx, models.EventReservationSeated, reservation, &table)
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// Finish marks the table's occupant finished and clears the table.
func (e *AssignmentEngine) Finish(ctx context.Context, tableID uint) (*models.Table, error) {
	var table *models.Table

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findTable(ctx, forUpdate(tx), tableID)
		if err != nil {
			return err
		}
		if err := validators.Run(current, validators.FinishChecks()...); err != nil {
			return err
		}

		table, err = finishOccupiedTable(ctx, tx, current)
		return err
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// FinishReservation finishes a seated reservation and frees whichever table
// it occupies.
func (e *AssignmentEngine) FinishReservation(ctx context.Context, reservationID uint) (*models.Reservation, error) {
	var reservation *models.Reservation

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := findReservation(ctx, forUpdate(tx), reservationID)
		if err != nil {
			return err
		}
		if locked.Status != models.StatusSeated {
			return ErrReservationChanged
		}

		var current models.Table
		err = forUpdate(tx).WithContext(ctx).
			Where("reservation_id = ?", reservationID).
			First(&current).Error
		switch {
		case err == nil:
			if _, err := finishOccupiedTable(ctx, tx, &current); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := finishReservationRow(tx, reservationID, time.Now()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("find table of reservation %d: %w", reservationID, err)
		}

		reservation, err = findReservation(ctx, tx, reservationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func finishOccupiedTable(ctx context.Context, tx *gorm.DB, current *models.Table) (*models.Table, error) {
	occupant := *current.ReservationID
	now := time.Now()

	if err := finishReservationRow(tx, occupant, now); err != nil {
		return nil, err
	}

	res := tx.Model(&models.Table{}).
		Where("table_id = ? AND reservation_id = ?", current.TableID, occupant).
		Updates(map[string]interface{}{"reservation_id": nil, "updated_at": now})
	if res.Error != nil {
		return nil, fmt.Errorf("free table %d: %w", current.TableID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrTableNotOccupied
	}

	var table models.Table
	if err := tx.First(&table, current.TableID).Error; err != nil {
		return nil, fmt.Errorf("reload table %d: %w", current.TableID, err)
	}
	reservation, err := findReservation(ctx, tx, occupant)
	if err != nil {
		return nil, err
	}
	if err := recordEvent(tx, models.EventReservationFinished, reservation, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func finishReservationRow(tx *gorm.DB, reservationID uint, now time.Time) error {
	res := tx.Model(&models.Reservation{}).
		Where("reservation_id = ? AND status = ?", reservationID, models.StatusSeated).
		Updates(map[string]interface{}{"status": models.StatusFinished, "updated_at": now})
	if res.Error != nil {
		return fmt.Errorf("finish reservation %d: %w", reservationID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("finish reservation %d: %w", reservationID, ErrOccupancyMismatch)
	}
	return nil
}
