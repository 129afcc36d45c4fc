package utils

import (
	"time"

	"github.com/jinzhu/now"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Clock supplies the current instant. Reservation rules read "today" and
// "now" only through it.
type Clock interface {
	Now() time.Time
}

// SystemClock reports wall-clock time in the restaurant's location.
type SystemClock struct {
	Location *time.Location
}

func NewSystemClock(tz string) SystemClock {
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "" {
		loc = time.UTC
	}
	return SystemClock{Location: loc}
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

// Today is the business day of clock as YYYY-MM-DD.
func Today(clock Clock) string {
	return now.New(clock.Now()).BeginningOfDay().Format(DateLayout)
}

// ClockTime is the current time of day as HHMM.
func ClockTime(clock Clock) string {
	return clock.Now().Format("1504")
}

// CompactTime turns HH:MM into HHMM.
func CompactTime(hhmm string) string {
	if len(hhmm) == 5 && hhmm[2] == ':' {
		return hhmm[:2] + hhmm[3:]
	}
	return hhmm
}
