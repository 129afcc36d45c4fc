package validators

import (
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type StatusPayload struct {
	Status string `json:"status"`
}

type StatusRequest struct {
	Data *StatusPayload `json:"data"`
}

// StatusChange is a requested move of a stored reservation to Target.
type StatusChange struct {
	Current models.ReservationStatus
	Target  models.ReservationStatus
	HasData bool
}

func NewStatusChange(current models.ReservationStatus, req *StatusRequest) StatusChange {
	sc := StatusChange{Current: current}
	if req != nil && req.Data != nil {
		sc.HasData = true
		sc.Target = models.ReservationStatus(req.Data.Status)
	}
	return sc
}

// transitions lists what the status endpoint may do. Seating goes through a
// table so the occupancy link is written with it.
var transitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.StatusBooked: {models.StatusCancelled},
	models.StatusSeated: {models.StatusFinished},
}

// CanTransition reports whether from may move to to. Repeating a non-terminal
// status is allowed and changes nothing.
func CanTransition(from, to models.ReservationStatus) bool {
	if from == to {
		return !from.IsTerminal()
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func StatusChecks() []Check[StatusChange] {
	return []Check[StatusChange]{
		statusHasData,
		isValidStatus,
		isNotFinished,
		isNotCancelled,
		isAllowedTransition,
	}
}

func statusHasData(sc StatusChange) *utils.AppError {
	if !sc.HasData {
		return utils.BadRequest(missingData)
	}
	return nil
}

func isValidStatus(sc StatusChange) *utils.AppError {
	if !sc.Target.IsValid() {
		return utils.BadRequest("Status %s is invalid", sc.Target)
	}
	return nil
}

func isNotFinished(sc StatusChange) *utils.AppError {
	if sc.Current == models.StatusFinished {
		return utils.BadRequest("This reservation is already finished")
	}
	return nil
}

func isNotCancelled(sc StatusChange) *utils.AppError {
	if sc.Current == models.StatusCancelled {
		return utils.BadRequest("This reservation is already cancelled")
	}
	return nil
}

func isAllowedTransition(sc StatusChange) *utils.AppError {
	if CanTransition(sc.Current, sc.Target) {
		return nil
	}
	if sc.Target == models.StatusSeated {
		return utils.BadRequest("Reservations are seated through a table")
	}
	return utils.BadRequest("Cannot change status from %s to %s", sc.Current, sc.Target)
}
