package models

import "time"

type Table struct {
	TableID       uint      `gorm:"primaryKey;column:table_id" json:"table_id"`
	TableName     string    `gorm:"column:table_name;type:varchar(50);not null" json:"table_name"`
	Capacity      int       `gorm:"not null" json:"capacity"`
	ReservationID *uint     `gorm:"column:reservation_id" json:"reservation_id"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// IsOccupied reports whether a seated party currently holds the table.
func (t Table) IsOccupied() bool {
	return t.ReservationID != nil
}
