package validators

import (
	"strings"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type TablePayload struct {
	TableName string      `json:"table_name"`
	Capacity  interface{} `json:"capacity"`
}

type TableRequest struct {
	Data *TablePayload `json:"data"`
}

func (p *TablePayload) ToModel() models.Table {
	capacity, _ := positiveInt(p.Capacity)
	return models.Table{
		TableName: strings.TrimSpace(p.TableName),
		Capacity:  capacity,
	}
}

type SeatPayload struct {
	ReservationID interface{} `json:"reservation_id"`
}

type SeatRequest struct {
	Data *SeatPayload `json:"data"`
}

// ReservationID returns the requested reservation; only meaningful after
// SeatRequestChecks passed.
func (r *SeatRequest) ReservationID() uint {
	if r == nil || r.Data == nil {
		return 0
	}
	id, _ := idValue(r.Data.ReservationID)
	return id
}

// SeatCandidate pairs the loaded reservation with the target table.
type SeatCandidate struct {
	Reservation *models.Reservation
	Table       *models.Table
}

func TableCreateChecks() []Check[*TableRequest] {
	return []Check[*TableRequest]{
		func(req *TableRequest) *utils.AppError {
			if req == nil || req.Data == nil {
				return utils.BadRequest(missingData)
			}
			return nil
		},
		func(req *TableRequest) *utils.AppError {
			if len([]rune(strings.TrimSpace(req.Data.TableName))) < 2 {
				return utils.BadRequest("A 'table_name' of at least 2 characters is required")
			}
			return nil
		},
		func(req *TableRequest) *utils.AppError {
			if _, ok := positiveInt(req.Data.Capacity); !ok {
				return utils.BadRequest("A 'capacity' of at least 1 is required")
			}
			return nil
		},
	}
}

func SeatRequestChecks() []Check[*SeatRequest] {
	return []Check[*SeatRequest]{
		func(req *SeatRequest) *utils.AppError {
			if req == nil || req.Data == nil {
				return utils.BadRequest(missingData)
			}
			return nil
		},
		func(req *SeatRequest) *utils.AppError {
			if _, ok := idValue(req.Data.ReservationID); !ok {
				return utils.BadRequest("A 'reservation_id' is required")
			}
			return nil
		},
	}
}

// SeatReservationChecks run once the reservation has been found.
func SeatReservationChecks() []Check[*models.Reservation] {
	return []Check[*models.Reservation]{
		func(r *models.Reservation) *utils.AppError {
			if r.Status == models.StatusSeated {
				return utils.BadRequest("This reservation is already seated")
			}
			return nil
		},
		func(r *models.Reservation) *utils.AppError {
			if r.Status.IsTerminal() {
				return utils.BadRequest("This reservation is already %s", r.Status)
			}
			return nil
		},
	}
}

// SeatTableChecks run once both the reservation and the table have been found.
func SeatTableChecks() []Check[SeatCandidate] {
	return []Check[SeatCandidate]{
		func(sc SeatCandidate) *utils.AppError {
			if sc.Table.IsOccupied() {
				return utils.BadRequest("Selected table is occupied, please choose a different table")
			}
			return nil
		},
		func(sc SeatCandidate) *utils.AppError {
			if sc.Table.Capacity < sc.Reservation.People {
				return utils.BadRequest("Selected table does not have enough capacity for this reservation")
			}
			return nil
		},
	}
}

func FinishChecks() []Check[*models.Table] {
	return []Check[*models.Table]{
		func(t *models.Table) *utils.AppError {
			if !t.IsOccupied() {
				return utils.BadRequest("Selected table is not occupied.")
			}
			return nil
		},
	}
}
