package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the wire format of date-only fields (HTML date inputs).
const DateLayout = "2006-01-02"

// Field limits
const (
	MinimumAge     = 18
	MaxNameLength  = 128
	MaxNoteLength  = 256
	MaxAssetName   = 256
	MaxSpecLength  = 1024
	StaffCodeRegex = `^SD\d{4}$`
	AssetCodeRegex = `^[A-Z]{2}\d{6}$`
)

var (
	nameRegex      = regexp.MustCompile(`^[\p{L}]+(?: [\p{L}]+)*$`)
	staffCodeRegex = regexp.MustCompile(StaffCodeRegex)
	assetCodeRegex = regexp.MustCompile(AssetCodeRegex)
)

// ParseDate parses a date-only value.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s", value)
	}
	return t, nil
}

// ValidateRequired checks if a string field is not empty
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidatePersonName accepts letters separated by single spaces
func ValidatePersonName(fieldName, value string) error {
	if err := ValidateRequired(fieldName, value); err != nil {
		return err
	}
	if utf8.RuneCountInString(value) > MaxNameLength {
		return fmt.Errorf("%s cannot exceed %d characters", fieldName, MaxNameLength)
	}
	if !nameRegex.MatchString(strings.TrimSpace(value)) {
		return fmt.Errorf("%s can only contain letters", fieldName)
	}
	return nil
}

// ValidateStaffCode checks the SDxxxx format
func ValidateStaffCode(code string) error {
	if !staffCodeRegex.MatchString(code) {
		return fmt.Errorf("invalid staff code: %s", code)
	}
	return nil
}

// ValidateAssetCode checks the two-letter prefix plus six digits format
func ValidateAssetCode(code string) error {
	if !assetCodeRegex.MatchString(code) {
		return fmt.Errorf("invalid asset code: %s", code)
	}
	return nil
}

// AgeOn returns the age in whole years on the given day
func AgeOn(dob, day time.Time) int {
	years := day.Year() - dob.Year()
	if day.Month() < dob.Month() || (day.Month() == dob.Month() && day.Day() < dob.Day()) {
		years--
	}
	return years
}

// ValidateAdult requires the person to be at least MinimumAge on day
func ValidateAdult(dob, day time.Time) error {
	if AgeOn(dob, day) < MinimumAge {
		return fmt.Errorf("user is under %d. Please select a different date", MinimumAge)
	}
	return nil
}

// IsWeekend reports whether the date is a Saturday or Sunday
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ValidateJoinedDate requires the joined date to follow the birth date and
// fall on a working day
func ValidateJoinedDate(dob, joined time.Time) error {
	if !joined.After(dob) {
		return fmt.Errorf("joined date is not later than date of birth. Please select a different date")
	}
	if IsWeekend(joined) {
		return fmt.Errorf("joined date is Saturday or Sunday. Please select a different date")
	}
	return nil
}

// ValidateNotPast rejects days before today
func ValidateNotPast(fieldName string, day, today time.Time) error {
	if truncateDay(day).Before(truncateDay(today)) {
		return fmt.Errorf("%s cannot be in the past", fieldName)
	}
	return nil
}

// ValidateMaxLength checks a rune count limit
func ValidateMaxLength(fieldName, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%s cannot exceed %d characters", fieldName, limit)
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
