package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
	"gorm.io/gorm"
)

var activeStatuses = []models.ReservationStatus{models.StatusBooked, models.StatusSeated}

type ReservationService struct {
	db     *gorm.DB
	rules  validators.ReservationRules
	clock  utils.Clock
	engine *AssignmentEngine
}

func NewReservationService(db *gorm.DB, clock utils.Clock, engine *AssignmentEngine) *ReservationService {
	return &ReservationService{
		db:     db,
		rules:  validators.NewReservationRules(clock),
		clock:  clock,
		engine: engine,
	}
}

// Create validates req and stores a new booked reservation.
func (s *ReservationService) Create(ctx context.Context, req *validators.ReservationRequest) (*models.Reservation, error) {
	if err := validators.Run(req, s.rules.CreateChecks()...); err != nil {
		return nil, err
	}

	reservation := models.Reservation{Status: models.StatusBooked}
	req.Data.ApplyTo(&reservation)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		return recordEvent(tx, models.EventReservationCreated, &reservation, nil)
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Read returns the reservation or a 404 AppError.
func (s *ReservationService) Read(ctx context.Context, id uint) (*models.Reservation, error) {
	return findReservation(ctx, s.db, id)
}

// ListByDate returns the booked and seated reservations of one day by time.
func (s *ReservationService) ListByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	if !validators.IsDate(date) {
		return nil, utils.BadRequest("A valid 'date' query parameter is required")
	}

	reservations := []models.Reservation{}
	err := s.db.WithContext(ctx).
		Where("reservation_date = ? AND status IN ?", date, activeStatuses).
		Order("reservation_time ASC").
		Order("reservation_id ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("list reservations for %s: %w", date, err)
	}
	return reservations, nil
}

// Search matches the digits of mobile against stored numbers, ignoring
// punctuation, ordered by date.
func (s *ReservationService) Search(ctx context.Context, mobile string) ([]models.Reservation, error) {
	digits := utils.NormalizePhone(mobile)
	if digits == "" {
		return nil, utils.BadRequest("A 'mobile_number' containing digits is required")
	}

	reservations := []models.Reservation{}
	err := s.db.WithContext(ctx).
		Where("mobile_digits LIKE ?", "%"+digits+"%").
		Order("reservation_date ASC").
		Order("reservation_time ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("search reservations: %w", err)
	}
	return reservations, nil
}

// Upcoming returns the active reservations from today onwards.
func (s *ReservationService) Upcoming(ctx context.Context) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	err := s.db.WithContext(ctx).
		Where("reservation_date >= ? AND status IN ?", utils.Today(s.clock), activeStatuses).
		Order("reservation_date ASC").
		Order("reservation_time ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("list upcoming reservations: %w", err)
	}
	return reservations, nil
}

// Update replaces the editable fields of a reservation that is still booked
// or seated. The status in the body is ignored.
func (s *ReservationService) Update(ctx context.Context, id uint, req *validators.ReservationRequest) (*models.Reservation, error) {
	current, err := s.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validators.Run(req, s.rules.UpdateChecks()...); err != nil {
		return nil, err
	}
	if current.Status.IsTerminal() {
		return nil, utils.BadRequest("This reservation is already %s", current.Status)
	}

	var edited models.Reservation
	req.Data.ApplyTo(&edited)

	var updated *models.Reservation
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Reservation{}).
			Where("reservation_id = ? AND status IN ?", id, activeStatuses).
			Updates(map[string]interface{}{
				"first_name":       edited.FirstName,
				"last_name":        edited.LastName,
				"mobile_number":    edited.MobileNumber,
				"mobile_digits":    edited.MobileDigits,
				"reservation_date": edited.ReservationDate,
				"reservation_time": edited.ReservationTime,
				"people":           edited.People,
				"observation":      edited.Observation,
				"updated_at":       time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("update reservation %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrReservationChanged
		}

		updated, err = findReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		return recordEvent(tx, models.EventReservationUpdated, updated, nil)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus moves a reservation along its lifecycle. Cancelling only
// touches the reservation; finishing a seated party also frees its table.
func (s *ReservationService) UpdateStatus(ctx context.Context, id uint, req *validators.StatusRequest) (*models.Reservation, error) {
	current, err := s.Read(ctx, id)
	if err != nil {
		return nil, err
	}

	change := validators.NewStatusChange(current.Status, req)
	if err := validators.Run(change, validators.StatusChecks()...); err != nil {
		return nil, err
	}

	switch {
	case change.Target == current.Status:
		return current, nil
	case change.Target == models.StatusFinished:
		return s.engine.FinishReservation(ctx, id)
	default:
		return s.cancel(ctx, id)
	}
}

func (s *ReservationService) cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	var cancelled *models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Reservation{}).
			Where("reservation_id = ? AND status = ?", id, models.StatusBooked).
			Updates(map[string]interface{}{"status": models.StatusCancelled, "updated_at": time.Now()})
		if res.Error != nil {
			return fmt.Errorf("cancel reservation %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrReservationChanged
		}

		var err error
		cancelled, err = findReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		return recordEvent(tx, models.EventReservationCancelled, cancelled, nil)
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}
