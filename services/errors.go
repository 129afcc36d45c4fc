package services

import (
	"errors"
	"net/http"

	"github.com/yeremiapane/restaurant-reservations/utils"
)

// Raised when a precondition no longer holds once the transaction runs.
var (
	ErrTableOccupied          = &utils.AppError{Status: http.StatusBadRequest, Message: "Selected table is occupied, please choose a different table"}
	ErrTableNotOccupied       = &utils.AppError{Status: http.StatusBadRequest, Message: "Selected table is not occupied."}
	ErrReservationNotSeatable = &utils.AppError{Status: http.StatusBadRequest, Message: "This reservation can no longer be seated"}
	ErrReservationChanged     = &utils.AppError{Status: http.StatusBadRequest, Message: "This reservation was changed by another request, please retry"}
)

// ErrOccupancyMismatch means a table pointed at a reservation that is not seated.
var ErrOccupancyMismatch = errors.New("table occupant is not a seated reservation")
