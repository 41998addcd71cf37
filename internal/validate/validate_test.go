package validate_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/internal/validate"
)

func TestPassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"!!!Goodpswd0", true},
		{"Abcdef1!", true},
		{"ABCDEFG1$xyz", true},
		{"GoBulls24", false},     // no special
		{"Abcde1!", false},       // 7 chars
		{"Abcdefgh1!xyz", false}, // 13 chars
		{"abcdefg1!", false},     // no uppercase
		{"Abcdefgh!!", false},    // no digit
		{"", false},
	}

	for _, tc := range tests {
		err := validate.Password(tc.password)
		if tc.ok && err != nil {
			t.Fatalf("Password(%q) unexpected error: %v", tc.password, err)
		}
		if !tc.ok && !errors.Is(err, domain.ErrWeakPassword) {
			t.Fatalf("Password(%q) expected ErrWeakPassword, got %v", tc.password, err)
		}
	}
}

func TestDate(t *testing.T) {
	valid := []string{"01/01/2001", "02/02/2002", "01/01/0001", "31/12/1999"}
	for _, s := range valid {
		if err := validate.Date(s); err != nil {
			t.Fatalf("Date(%q) unexpected error: %v", s, err)
		}
	}

	invalid := []string{"", "1/1/2001", "01/01/01", "01-01-2001", "01/01/2001/01", "ab/cd/efgh", "01/01/20O1"}
	for _, s := range invalid {
		if err := validate.Date(s); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("Date(%q) expected ErrValidation, got %v", s, err)
		}
	}
}

type sample struct {
	Title  string `json:"title" validate:"required"`
	Salary string `json:"salary" validate:"required,numeric"`
	Start  string `json:"start_date" validate:"ddmmyyyy"`
}

func TestStruct(t *testing.T) {
	if err := validate.Struct(sample{Title: "t", Salary: "100", Start: "01/02/2003"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := validate.Struct(sample{Salary: "lots", Start: "tomorrow"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, want := range []string{"title is required", "salary must be numeric", "start_date must be dd/mm/yyyy"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
}
