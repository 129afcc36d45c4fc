package validators

import (
	"regexp"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const (
	openingTime = "1030"
	closingTime = "2130"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)
	timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	// digit groups, optionally parenthesised, joined by a single space or
	// dash, with an optional extension
	phonePattern = regexp.MustCompile(`^\+?(?:\(\d+(?:\.\d+)?\)|\d+(?:\.\d+)?)(?:[ -]?(?:\(\d+(?:\.\d+)?\)|\d+(?:\.\d+)?))*(?:[ ]?(?:x|ext)\.?[ ]?\d{1,5})?$`)
)

type ReservationPayload struct {
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	MobileNumber    string      `json:"mobile_number"`
	ReservationDate string      `json:"reservation_date"`
	ReservationTime string      `json:"reservation_time"`
	People          interface{} `json:"people"`
	Status          string      `json:"status"`
	Observation     string      `json:"observation"`
}

type ReservationRequest struct {
	Data *ReservationPayload `json:"data"`
}

// PartySize returns people as an int; only meaningful after validation.
func (p *ReservationPayload) PartySize() int {
	n, _ := positiveInt(p.People)
	return n
}

// ApplyTo copies the editable fields onto r. Status is never copied.
func (p *ReservationPayload) ApplyTo(r *models.Reservation) {
	r.FirstName = strings.TrimSpace(p.FirstName)
	r.LastName = strings.TrimSpace(p.LastName)
	r.MobileNumber = strings.TrimSpace(p.MobileNumber)
	r.MobileDigits = utils.NormalizePhone(p.MobileNumber)
	r.ReservationDate = p.ReservationDate
	r.ReservationTime = p.ReservationTime
	r.People = p.PartySize()
	r.Observation = strings.TrimSpace(p.Observation)
}

// ReservationRules validates reservation bodies against the restaurant's
// calendar as seen through Clock.
type ReservationRules struct {
	Clock utils.Clock
}

func NewReservationRules(clock utils.Clock) ReservationRules {
	return ReservationRules{Clock: clock}
}

// CreateChecks are the field checks followed by the booked-only status rule.
func (rr ReservationRules) CreateChecks() []Check[*ReservationRequest] {
	return append(rr.UpdateChecks(), hasBookedStatus)
}

// UpdateChecks are the field checks shared by create and full update.
func (rr ReservationRules) UpdateChecks() []Check[*ReservationRequest] {
	return []Check[*ReservationRequest]{
		hasData,
		hasFirstName,
		hasLastName,
		hasMobileNumber,
		hasReservationDate,
		isOpenOnDate,
		rr.isNotPastDate,
		hasReservationTime,
		isWithinOpeningHours,
		rr.isFutureTimeToday,
		hasPeople,
	}
}

func payloadOf(req *ReservationRequest) *ReservationPayload {
	if req == nil || req.Data == nil {
		return &ReservationPayload{}
	}
	return req.Data
}

func hasData(req *ReservationRequest) *utils.AppError {
	if req == nil || req.Data == nil {
		return utils.BadRequest(missingData)
	}
	return nil
}

func hasFirstName(req *ReservationRequest) *utils.AppError {
	if strings.TrimSpace(payloadOf(req).FirstName) == "" {
		return utils.BadRequest("A 'first_name' is required")
	}
	return nil
}

func hasLastName(req *ReservationRequest) *utils.AppError {
	if strings.TrimSpace(payloadOf(req).LastName) == "" {
		return utils.BadRequest("A 'last_name' is required")
	}
	return nil
}

func hasMobileNumber(req *ReservationRequest) *utils.AppError {
	if !IsPhoneNumber(payloadOf(req).MobileNumber) {
		return utils.BadRequest("A valid 'mobile_number' is required")
	}
	return nil
}

// IsPhoneNumber accepts numbers with at least seven digits before an
// optional x/ext extension.
func IsPhoneNumber(s string) bool {
	if !phonePattern.MatchString(s) {
		return false
	}
	number := s
	if i := strings.IndexByte(s, 'x'); i >= 0 {
		number = s[:i]
	}
	return len(utils.NormalizePhone(number)) >= 7
}

// IsDate accepts YYYY-MM-DD strings naming a real calendar day.
func IsDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(utils.DateLayout, s)
	return err == nil
}

func hasReservationDate(req *ReservationRequest) *utils.AppError {
	if !IsDate(payloadOf(req).ReservationDate) {
		return utils.BadRequest("A valid 'reservation_date' is required")
	}
	return nil
}

func isOpenOnDate(req *ReservationRequest) *utils.AppError {
	day, err := time.Parse(utils.DateLayout, payloadOf(req).ReservationDate)
	if err == nil && day.Weekday() == time.Tuesday {
		return utils.BadRequest("Restaurant is closed on Tuesdays. Please choose a different day.")
	}
	return nil
}

func (rr ReservationRules) isNotPastDate(req *ReservationRequest) *utils.AppError {
	if payloadOf(req).ReservationDate < utils.Today(rr.Clock) {
		return utils.BadRequest("Reservation must be for a future date.")
	}
	return nil
}

func hasReservationTime(req *ReservationRequest) *utils.AppError {
	if !timePattern.MatchString(payloadOf(req).ReservationTime) {
		return utils.BadRequest("A valid 'reservation_time' is required")
	}
	return nil
}

func isWithinOpeningHours(req *ReservationRequest) *utils.AppError {
	t := utils.CompactTime(payloadOf(req).ReservationTime)
	if t < openingTime || t > closingTime {
		return utils.BadRequest("Reservations must be between 10:30 AM and 9:30 PM")
	}
	return nil
}

func (rr ReservationRules) isFutureTimeToday(req *ReservationRequest) *utils.AppError {
	p := payloadOf(req)
	if p.ReservationDate == utils.Today(rr.Clock) &&
		utils.CompactTime(p.ReservationTime) <= utils.ClockTime(rr.Clock) {
		return utils.BadRequest("Reservations for today must be in the future")
	}
	return nil
}

func hasPeople(req *ReservationRequest) *utils.AppError {
	if _, ok := positiveInt(payloadOf(req).People); !ok {
		return utils.BadRequest("A valid number of 'people' is required")
	}
	return nil
}

func hasBookedStatus(req *ReservationRequest) *utils.AppError {
	status := payloadOf(req).Status
	if status == "" || models.ReservationStatus(status) == models.StatusBooked {
		return nil
	}
	return utils.BadRequest("Cannot create a new reservation with status %s", status)
}
