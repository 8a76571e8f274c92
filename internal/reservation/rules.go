package reservation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/littlelemon/tablebook/internal/booking"
)

// Validator returns a message for an invalid value, or "" when it is valid.
type Validator func(value string, now time.Time) string

// Rules maps fields to their validator. Fields without an entry never fail.
type Rules map[Field]Validator

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
)

const (
	MinGuests = 1
	MaxGuests = 8
)

func DefaultRules() Rules {
	return Rules{
		Name:     validateName,
		Email:    validateEmail,
		Phone:    validatePhone,
		Date:     validateDate,
		Time:     validateTime,
		Guests:   validateGuests,
		Occasion: validateOccasion,
	}
}

func (r Rules) Register(f Field, v Validator) {
	r[f] = v
}

func (r Rules) Check(f Field, value string, now time.Time) string {
	v, ok := r[f]
	if !ok || v == nil {
		return ""
	}
	return v(value, now)
}

func validateName(v string, _ time.Time) string {
	if len([]rune(strings.TrimSpace(v))) < 2 {
		return "Name must be at least 2 characters"
	}
	return ""
}

func validateEmail(v string, _ time.Time) string {
	if !emailRe.MatchString(strings.TrimSpace(v)) {
		return "Please enter a valid email address"
	}
	return ""
}

func validatePhone(v string, _ time.Time) string {
	if !phoneRe.MatchString(strings.TrimSpace(v)) {
		return "Please enter a valid phone number"
	}
	return ""
}

func validateDate(v string, now time.Time) string {
	if strings.TrimSpace(v) == "" {
		return "Please select a date"
	}
	d, err := ParseDate(v, now.Location())
	if err != nil {
		return "Please enter a valid date"
	}
	if d.Before(startOfDay(now)) {
		return "Date cannot be in the past"
	}
	return ""
}

func validateTime(v string, _ time.Time) string {
	if strings.TrimSpace(v) == "" {
		return "Please select a time"
	}
	return ""
}

func validateGuests(v string, _ time.Time) string {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < MinGuests || n > MaxGuests {
		return "Number of guests must be between 1 and 8"
	}
	return ""
}

// ParseDate reads a YYYY-MM-DD value as midnight in loc.
func ParseDate(v string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(booking.DateLayout, strings.TrimSpace(v), loc)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// validateOccasion accepts an empty value; otherwise it must be one of
// Occasions.
func validateOccasion(v string, _ time.Time) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	for _, o := range Occasions {
		if v == o {
			return ""
		}
	}
	return "Please select a valid occasion"
}
