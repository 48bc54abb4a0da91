package validation

import (
	"testing"

	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

func TestIsUUID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"3f2b8c1e-9a4d-4e6f-8b2a-1c3d5e7f9a0b", true},
		{"3F2B8C1E-9A4D-4E6F-BB2A-1C3D5E7F9A0B", true},
		{"3f2b8c1e-9a4d-1e6f-a b2a-1c3d5e7f9a0b", false},
		{"3f2b8c1e-9a4d-4e6f-cb2a-1c3d5e7f9a0b", false},
		{"3f2b8c1e-9a4d-6e6f-8b2a-1c3d5e7f9a0b", false},
		{"3f2b8c1e9a4d4e6f8b2a1c3d5e7f9a0b", false},
		{"3f2b8c1e-9a4d-4e6f-8b2a-1c3d5e7f9a0", false},
		{"3f2b8c1e-9a4d4-e6f-8b2a-1c3d5e7f9a0b", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsUUID(tt.in); got != tt.want {
				t.Fatalf("IsUUID(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"23:59:59", true},
		{"14:00:00", true},
		{"24:00", false},
		{"9:30", false},
		{"12:60", false},
		{"12:30:60", false},
		{"12:30:", false},
		{"noon", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsClockTime(tt.in); got != tt.want {
				t.Fatalf("IsClockTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2024-06-01", false},
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"2024-13-01", true},
		{"2024-6-1", true},
		{"01/06/2024", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.String() != tt.in {
				t.Fatalf("expected round trip %q, got %q", tt.in, d.String())
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("14:05:09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 14 || got.Minute() != 5 || got.Second() != 9 {
		t.Fatalf("unexpected components %v", got)
	}
	short, err := ParseClock("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if short.String() != "09:30" {
		t.Fatalf("expected 09:30, got %s", short)
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Fatalf("expected error for 25:00")
	}
}

func TestMissingFields(t *testing.T) {
	got := MissingFields([]Field{
		{Name: "clientId", Value: "x"},
		{Name: "title", Value: "  "},
		{Name: "type", Value: ""},
	})
	if len(got) != 2 || got[0] != "title" || got[1] != "type" {
		t.Fatalf("unexpected missing fields %v", got)
	}
}

type sample struct {
	ClientID string `json:"clientId" validate:"required,uuid_canonical"`
	Title    string `json:"title" validate:"required"`
	Date     string `json:"appointmentDate" validate:"required,caldate"`
	Start    string `json:"startTime" validate:"omitempty,clock"`
	Type     string `json:"type" validate:"omitempty,oneof=Call Meeting"`
}

func TestValidatorStruct(t *testing.T) {
	v := New()

	ok := sample{ClientID: "3f2b8c1e-9a4d-4e6f-8b2a-1c3d5e7f9a0b", Title: "Review", Date: "2024-06-01", Start: "14:00", Type: "Call"}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := v.Struct(sample{ClientID: "3f2b8c1e-9a4d-4e6f-8b2a-1c3d5e7f9a0b", Date: "2024-06-01"})
	de := apperrors.ToDomainError(err)
	if de == nil || de.HTTPStatus != 400 {
		t.Fatalf("expected 400, got %+v", de)
	}
	missing, _ := de.Details["missingFields"].([]string)
	if len(missing) != 1 || missing[0] != "title" {
		t.Fatalf("expected title to be reported missing, got %v", de.Details)
	}

	err = v.Struct(sample{ClientID: "nope", Title: "x", Date: "2024-02-31", Start: "7pm", Type: "Lunch"})
	de = apperrors.ToDomainError(err)
	fields, _ := de.Details["fields"].(map[string]any)
	for _, name := range []string{"clientId", "appointmentDate", "startTime", "type"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("expected %s to be reported, got %v", name, fields)
		}
	}
}

func TestOneOfValues(t *testing.T) {
	got := oneOfValues("Call Meeting 'Site Visit' 'Policy Review'")
	want := []string{"Call", "Meeting", "Site Visit", "Policy Review"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
