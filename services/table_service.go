package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
	"gorm.io/gorm"
)

type TableService struct {
	db     *gorm.DB
	engine *AssignmentEngine
	cache  TableCache
}

func NewTableService(db *gorm.DB, engine *AssignmentEngine, cache TableCache) *TableService {
	if cache == nil {
		cache = NopTableCache{}
	}
	return &TableService{db: db, engine: engine, cache: cache}
}

func (s *TableService) Create(ctx context.Context, req *validators.TableRequest) (*models.Table, error) {
	if err := validators.Run(req, validators.TableCreateChecks()...); err != nil {
		return nil, err
	}

	table := req.Data.ToModel()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&table).Error; err != nil {
			return fmt.Errorf("create table: %w", err)
		}
		return recordEvent(tx, models.EventTableCreated, nil, &table)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return &table, nil
}

// List returns every table ordered by name.
func (s *TableService) List(ctx context.Context) ([]models.Table, error) {
	if tables, ok := s.cache.Get(ctx); ok {
		return tables, nil
	}

	tables := []models.Table{}
	if err := s.db.WithContext(ctx).Order("table_name ASC").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	s.cache.Set(ctx, tables)
	return tables, nil
}

func (s *TableService) Read(ctx context.Context, id uint) (*models.Table, error) {
	return findTable(ctx, s.db, id)
}

// Seat validates the request in order (reservation id, reservation exists,
// reservation seatable, table exists, table free, capacity) and then seats
// the party.
func (s *TableService) Seat(ctx context.Context, tableID uint, req *validators.SeatRequest) (*models.Table, error) {
	if err := validators.Run(req, validators.SeatRequestChecks()...); err != nil {
		return nil, err
	}

	reservationID := req.ReservationID()
	reservation, err := findReservation(ctx, s.db, reservationID)
	if err != nil {
		return nil, err
	}
	if err := validators.Run(reservation, validators.SeatReservationChecks()...); err != nil {
		return nil, err
	}

	table, err := s.Read(ctx, tableID)
	if err != nil {
		return nil, err
	}
	candidate := validators.SeatCandidate{Reservation: reservation, Table: table}
	if err := validators.Run(candidate, validators.SeatTableChecks()...); err != nil {
		return nil, err
	}

	seated, err := s.engine.Seat(ctx, reservationID, tableID)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	utils.InfoLogger.WithFields(logrus.Fields{
		"table_id":       tableID,
		"reservation_id": reservationID,
	}).Info("Reservation seated")
	return seated, nil
}

// Finish frees an occupied table and finishes its reservation.
func (s *TableService) Finish(ctx context.Context, tableID uint) (*models.Table, error) {
	table, err := s.Read(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if err := validators.Run(table, validators.FinishChecks()...); err != nil {
		return nil, err
	}

	freed, err := s.engine.Finish(ctx, tableID)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	utils.InfoLogger.WithField("table_id", tableID).Info("Table finished")
	return freed, nil
}
