package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

// CreateReservation -> POST /reservations
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req validators.ReservationRequest
	if !bindBody(c, &req) {
		return
	}

	reservation, err := rc.Reservations.Create(c.Request.Context(), &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("New reservation %d for %s on %s %s",
		reservation.ReservationID, reservation.LastName, reservation.ReservationDate, reservation.ReservationTime)
	utils.RespondJSON(c, http.StatusCreated, reservation)
}

// ListReservations -> GET /reservations?date= | ?mobile_number= | upcoming
func (rc *ReservationController) ListReservations(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		result interface{}
		err    error
	)
	switch {
	case c.Query("date") != "":
		result, err = rc.Reservations.ListByDate(ctx, c.Query("date"))
	case c.Query("mobile_number") != "":
		result, err = rc.Reservations.Search(ctx, c.Query("mobile_number"))
	default:
		result, err = rc.Reservations.Upcoming(ctx)
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, result)
}

// GetReservation -> GET /reservations/:reservation_id
func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := rc.reservationID(c)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.Read(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservation)
}

// UpdateReservation -> PUT /reservations/:reservation_id
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := rc.reservationID(c)
	if !ok {
		return
	}

	var req validators.ReservationRequest
	if !bindBody(c, &req) {
		return
	}

	reservation, err := rc.Reservations.Update(c.Request.Context(), id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservation)
}

// UpdateReservationStatus -> PUT /reservations/:reservation_id/status
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id, ok := rc.reservationID(c)
	if !ok {
		return
	}

	var req validators.StatusRequest
	if !bindBody(c, &req) {
		return
	}

	reservation, err := rc.Reservations.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d status changed to %s", reservation.ReservationID, reservation.Status)
	utils.RespondJSON(c, http.StatusOK, reservation)
}

func (rc *ReservationController) reservationID(c *gin.Context) (uint, bool) {
	id, ok := paramID(c, "reservation_id")
	if !ok {
		utils.RespondError(c, utils.NotFound("Reservation ID %s does not exist.", c.Param("reservation_id")))
	}
	return id, ok
}
