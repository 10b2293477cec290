package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestCalendarDate(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	type payload struct {
		Date string `validate:"calendar_date"`
	}

	tests := []struct {
		in   string
		want bool
	}{
		{"2024-01-31", true},
		{"2024-02-29", true},
		{"", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"31/01/2024", false},
		{"2024-01-31T00:00:00Z", false},
		{"0001-01-01", false},
		{"1899-12-31", false},
		{"1900-01-01", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := v.Struct(payload{Date: tt.in})
			if (err == nil) != tt.want {
				t.Errorf("calendar_date(%q) valid = %v, want %v", tt.in, err == nil, tt.want)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	type payload struct {
		Description string `validate:"notblank"`
	}

	if err := v.Struct(payload{Description: "Coffee"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	for _, in := range []string{"", "   ", "\t\n"} {
		if err := v.Struct(payload{Description: in}); err == nil {
			t.Errorf("expected %q to be rejected", in)
		}
	}
}

func TestRegister(t *testing.T) {
	// Registering on gin's engine twice must be harmless.
	Register()
	Register()
}
