package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EventReservationCreated   = "reservation_created"
	EventReservationUpdated   = "reservation_updated"
	EventReservationCancelled = "reservation_cancelled"
	EventReservationSeated    = "reservation_seated"
	EventReservationFinished  = "reservation_finished"
	EventTableCreated         = "table_created"
)

// ReservationEvent is an outbox row written in the same transaction as the
// change it describes. The relay marks it processed once fanned out.
type ReservationEvent struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	EventID       string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"event_id"`
	EventType     string         `gorm:"type:varchar(50);not null" json:"event_type"`
	ReservationID *uint          `gorm:"index" json:"reservation_id,omitempty"`
	TableID       *uint          `gorm:"index" json:"table_id,omitempty"`
	Payload       datatypes.JSON `json:"payload"`
	Processed     bool           `gorm:"default:false;index:idx_processed" json:"processed"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
}
