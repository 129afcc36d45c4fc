package models

import "time"

type ReservationStatus string

const (
	StatusBooked    ReservationStatus = "booked"
	StatusSeated    ReservationStatus = "seated"
	StatusFinished  ReservationStatus = "finished"
	StatusCancelled ReservationStatus = "cancelled"
)

// ValidStatuses lists every status a reservation can hold.
var ValidStatuses = []ReservationStatus{StatusBooked, StatusSeated, StatusFinished, StatusCancelled}

func (s ReservationStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// IsActive reports whether the reservation shows up on the day-of views.
func (s ReservationStatus) IsActive() bool {
	return s == StatusBooked || s == StatusSeated
}

// Reservation dates are stored as YYYY-MM-DD and times as HH:MM so that
// lexical order equals chronological order on every driver.
type Reservation struct {
	ReservationID   uint              `gorm:"primaryKey;column:reservation_id" json:"reservation_id"`
	FirstName       string            `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string            `gorm:"type:varchar(100);not null" json:"last_name"`
	MobileNumber    string            `gorm:"type:varchar(30);not null" json:"mobile_number"`
	MobileDigits    string            `gorm:"type:varchar(30);not null;index" json:"-"`
	ReservationDate string            `gorm:"type:varchar(10);not null;index:idx_reservation_day" json:"reservation_date"`
	ReservationTime string            `gorm:"type:varchar(5);not null;index:idx_reservation_day" json:"reservation_time"`
	People          int               `gorm:"not null" json:"people"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'booked';index" json:"status"`
	Observation     string            `gorm:"type:varchar(255)" json:"observation,omitempty"`
	CreatedAt       time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null" json:"updated_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}
