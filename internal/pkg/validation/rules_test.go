package validation

import (
	"strings"
	"testing"
)

func TestIsIneValid(t *testing.T) {
	tests := []struct {
		ine  string
		want bool
	}{
		{"N12345678901", true},
		{"X12345678901", false},
		{"N123", false},
		{"N123456789012", false},
		{"n12345678901", false},
		{"N1234567890a", false},
		{"", false},
		{" N12345678901", false},
	}

	for _, tc := range tests {
		if got := IsIneValid(tc.ine); got != tc.want {
			t.Errorf("IsIneValid(%q) = %v, want %v", tc.ine, got, tc.want)
		}
	}
}

func TestIsNameValid(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Diallo", true},
		{"Aïssatou", true},
		{"Sèye", true},
		{"A", false},
		{"Jean-Pierre", false},
		{"Jean Pierre", false},
		{"Diallo2", false},
		{"", false},
		{strings.Repeat("a", 51), false},
		{strings.Repeat("a", 50), true},
	}

	for _, tc := range tests {
		if got := IsNameValid(tc.name); got != tc.want {
			t.Errorf("IsNameValid(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsFiliereValid(t *testing.T) {
	tests := []struct {
		filiere string
		want    bool
	}{
		{"Informatique", true},
		{"Génie Civil", true},
		{"L1", false},
		{"", false},
		{"Info-Com", false},
	}

	for _, tc := range tests {
		if got := IsFiliereValid(tc.filiere); got != tc.want {
			t.Errorf("IsFiliereValid(%q) = %v, want %v", tc.filiere, got, tc.want)
		}
	}
}

func TestIsAgeValid(t *testing.T) {
	tests := []struct {
		age  int
		want bool
	}{
		{12, true},
		{99, true},
		{11, false},
		{100, false},
		{0, false},
		{-5, false},
		{25, true},
	}

	for _, tc := range tests {
		if got := IsAgeValid(tc.age); got != tc.want {
			t.Errorf("IsAgeValid(%d) = %v, want %v", tc.age, got, tc.want)
		}
	}
}

func TestIsPhoneValid(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"771234567", true},
		{"12345678", true},
		{"123456789012345", true},
		{"1234567", false},
		{"1234567890123456", false},
		{"77-123-45-67", false},
		{"+221771234567", false},
	}

	for _, tc := range tests {
		if got := IsPhoneValid(tc.phone); got != tc.want {
			t.Errorf("IsPhoneValid(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

func TestIsSexeValid(t *testing.T) {
	tests := []struct {
		sexe string
		want bool
	}{
		{"M", true},
		{"F", true},
		{"m", false},
		{"f", false},
		{"", false},
		{"X", false},
	}

	for _, tc := range tests {
		if got := IsSexeValid(tc.sexe); got != tc.want {
			t.Errorf("IsSexeValid(%q) = %v, want %v", tc.sexe, got, tc.want)
		}
	}
}

func TestIsEmailValid(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"admin@ecole.sn", true},
		{"a.b+c@example.co", true},
		{"invalid", false},
		{"@ecole.sn", false},
		{"admin@", false},
		{"admin@ecole", false},
	}

	for _, tc := range tests {
		if got := IsEmailValid(tc.email); got != tc.want {
			t.Errorf("IsEmailValid(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}
