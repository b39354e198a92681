package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone America/New_York", timezone: "America/New_York", wantErr: false},
		{name: "valid timezone Asia/Tokyo", timezone: "Asia/Tokyo", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		timeStr string
		want    int
		wantErr bool
	}{
		{name: "midnight", timeStr: "00:00", want: 0},
		{name: "morning", timeStr: "08:30", want: 510},
		{name: "end of day", timeStr: "23:59", want: 1439},
		{name: "missing minutes", timeStr: "08", wantErr: true},
		{name: "not a time", timeStr: "late", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.timeStr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.timeStr, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.timeStr, got, tt.want)
			}
		})
	}
}

func TestCombineDateAndTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}

	got, err := CombineDateAndTime("2026-04-15", "08:30", loc)
	if err != nil {
		t.Fatalf("CombineDateAndTime() error = %v", err)
	}

	want := time.Date(2026, 4, 15, 8, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndTime() = %v, want %v", got, want)
	}

	if _, err := CombineDateAndTime("bad", "08:30", loc); err == nil {
		t.Error("CombineDateAndTime() with bad date should fail")
	}
	if _, err := CombineDateAndTime("2026-04-15", "8:30pm", loc); err == nil {
		t.Error("CombineDateAndTime() with bad time should fail")
	}
}

func TestValidateTimeFormat(t *testing.T) {
	if !ValidateTimeFormat("07:15") {
		t.Error("ValidateTimeFormat(07:15) = false, want true")
	}
	if ValidateTimeFormat("7:15 AM") {
		t.Error("ValidateTimeFormat(7:15 AM) = true, want false")
	}
}
