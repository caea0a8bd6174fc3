package utils

import (
	"testing"
	"time"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"17:30", 1050, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9am", 0, true},
		{"", 0, true},
		{"09:60", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestAtMinutes(t *testing.T) {
	day := time.Date(2026, time.January, 5, 13, 45, 12, 0, time.UTC)

	got := AtMinutes(day, 540)
	want := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AtMinutes = %v, want %v", got, want)
	}

	midnight := AtMinutes(day, 0)
	if midnight.Hour() != 0 || midnight.Minute() != 0 || midnight.Day() != 5 {
		t.Errorf("AtMinutes midnight = %v", midnight)
	}
}

func TestMinutesOfDay(t *testing.T) {
	got := MinutesOfDay(time.Date(2026, time.January, 5, 17, 30, 59, 0, time.UTC))
	if got != 1050 {
		t.Errorf("MinutesOfDay = %d, want 1050", got)
	}
}

func TestCombineDateAndTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	got, err := CombineDateAndTime("2026-01-05", "14:30", loc)
	if err != nil {
		t.Fatalf("CombineDateAndTime failed: %v", err)
	}
	want := time.Date(2026, time.January, 5, 14, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndTime = %v, want %v", got, want)
	}

	if _, err := CombineDateAndTime("05/01/2026", "14:30", loc); err == nil {
		t.Error("accepted malformed date")
	}
	if _, err := CombineDateAndTime("2026-01-05", "2:30pm", loc); err == nil {
		t.Error("accepted malformed time")
	}
}

func TestParseDateInLocation(t *testing.T) {
	got, err := ParseDateInLocation("2026-01-05", time.UTC)
	if err != nil {
		t.Fatalf("ParseDateInLocation failed: %v", err)
	}
	want := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDateInLocation = %v, want %v", got, want)
	}

	if _, err := ParseDateInLocation("not-a-date", time.UTC); err == nil {
		t.Error("accepted malformed date")
	}
}

func TestValidateTimeFormat(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, s := range valid {
		if !ValidateTimeFormat(s) {
			t.Errorf("ValidateTimeFormat(%q) = false, want true", s)
		}
	}
	invalid := []string{"24:00", "9:00am", "noon", ""}
	for _, s := range invalid {
		if ValidateTimeFormat(s) {
			t.Errorf("ValidateTimeFormat(%q) = true, want false", s)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("") || !ValidateTimezone("Local") {
		t.Error("empty and Local should always validate")
	}
	if !ValidateTimezone("UTC") {
		t.Error("UTC rejected")
	}
	if ValidateTimezone("Mars/Olympus_Mons") {
		t.Error("nonsense timezone accepted")
	}
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	if err != nil || loc != time.Local {
		t.Errorf("LoadLocation(\"\") = %v, %v; want local", loc, err)
	}
	if _, err := LoadLocation("Nowhere/Null"); err == nil {
		t.Error("invalid location accepted")
	}
}
