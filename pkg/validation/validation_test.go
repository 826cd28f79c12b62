package validation

import (
	"strings"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-02-30"); err == nil {
		t.Error("Expected error for impossible date")
	}
	got, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !got.Equal(date("2024-02-29")) {
		t.Errorf("Expected 2024-02-29, got %v", got)
	}
}

func TestValidatePersonName(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		expectError bool
	}{
		{name: "Simple name", value: "Binh", expectError: false},
		{name: "Accented name", value: "Nguyễn", expectError: false},
		{name: "Two words", value: "Van Binh", expectError: false},
		{name: "Empty", value: "  ", expectError: true},
		{name: "Digits", value: "Binh2", expectError: true},
		{name: "Double space", value: "Van  Binh", expectError: true},
		{name: "Too long", value: strings.Repeat("a", MaxNameLength+1), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePersonName("First name", tt.value)
			if tt.expectError && err == nil {
				t.Errorf("Expected error for %q", tt.value)
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error for %q: %v", tt.value, err)
			}
		})
	}
}

func TestValidateCodes(t *testing.T) {
	if err := ValidateStaffCode("SD0001"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := ValidateStaffCode("SD01"); err == nil {
		t.Error("Expected error for short staff code")
	}
	if err := ValidateAssetCode("LA000123"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := ValidateAssetCode("la000123"); err == nil {
		t.Error("Expected error for lowercase asset code")
	}
}

func TestValidateAdult(t *testing.T) {
	today := date("2024-06-15")

	tests := []struct {
		name        string
		dob         string
		expectError bool
	}{
		{name: "Exactly 18 today", dob: "2006-06-15", expectError: false},
		{name: "18 tomorrow", dob: "2006-06-16", expectError: true},
		{name: "Well over 18", dob: "1990-01-01", expectError: false},
		{name: "Child", dob: "2015-01-01", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdult(date(tt.dob), today)
			if tt.expectError != (err != nil) {
				t.Errorf("ValidateAdult(%s) error = %v, expectError %v", tt.dob, err, tt.expectError)
			}
		})
	}
}

func TestValidateJoinedDate(t *testing.T) {
	dob := date("1995-03-01")

	tests := []struct {
		name        string
		joined      string
		expectError bool
		contains    string
	}{
		{name: "Monday", joined: "2024-06-17", expectError: false},
		{name: "Saturday", joined: "2024-06-15", expectError: true, contains: "Saturday or Sunday"},
		{name: "Sunday", joined: "2024-06-16", expectError: true, contains: "Saturday or Sunday"},
		{name: "Before birth", joined: "1994-03-01", expectError: true, contains: "not later than date of birth"},
		{name: "Same day as birth", joined: "1995-03-01", expectError: true, contains: "not later than date of birth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJoinedDate(dob, date(tt.joined))
			if tt.expectError != (err != nil) {
				t.Fatalf("ValidateJoinedDate(%s) error = %v, expectError %v", tt.joined, err, tt.expectError)
			}
			if err != nil && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error containing %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

func TestValidateNotPast(t *testing.T) {
	now := time.Date(2024, 6, 15, 17, 30, 0, 0, time.UTC)

	if err := ValidateNotPast("Assigned date", date("2024-06-15"), now); err != nil {
		t.Errorf("Today should be accepted: %v", err)
	}
	if err := ValidateNotPast("Assigned date", date("2024-06-14"), now); err == nil {
		t.Error("Yesterday should be rejected")
	}
}

func TestValidateMaxLength(t *testing.T) {
	if err := ValidateMaxLength("Note", strings.Repeat("ê", MaxNoteLength), MaxNoteLength); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := ValidateMaxLength("Note", strings.Repeat("a", MaxNoteLength+1), MaxNoteLength); err == nil {
		t.Error("Expected error for long note")
	}
}
