package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type eventPayload struct {
	Reservation *models.Reservation `json:"reservation,omitempty"`
	Table       *models.Table       `json:"table,omitempty"`
}

// recordEvent appends an outbox row inside tx so it commits with the change.
func recordEvent(tx *gorm.DB, eventType string, reservation *models.Reservation, table *models.Table) error {
	body, err := json.Marshal(eventPayload{Reservation: reservation, Table: table})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	event := models.ReservationEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Payload:   datatypes.JSON(body),
	}
	if reservation != nil {
		id := reservation.ReservationID
		event.ReservationID = &id
	}
	if table != nil {
		id := table.TableID
		event.TableID = &id
	}

	if err := tx.Create(&event).Error; err != nil {
		return fmt.Errorf("record %s event: %w", eventType, err)
	}
	return nil
}
