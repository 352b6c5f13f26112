package service

import (
	"time"

	"github.com/garnizeh/employees/pkg/models"
)

// Violation messages are part of the API contract; tests assert the exact
// strings.
const (
	msgFirstNameEmpty = "Employee firstname cannot be empty"
	msgLastNameEmpty  = "Employee lastname cannot be empty"
	msgTooYoung       = "The employee must be over 18 years old"
)

const adultAgeYears = 18

// Validate checks every rule and returns the violations in declaration
// order: firstName, lastName, age. It is pure; no store calls are made.
func Validate(e *models.Employee) []string {
	var violations []string
	if e.FirstName == "" {
		violations = append(violations, msgFirstNameEmpty)
	}
	if e.LastName == "" {
		violations = append(violations, msgLastNameEmpty)
	}
	if e.DateOfBirth != nil {
		cutoff := models.DateOf(time.Now().UTC().AddDate(-adultAgeYears, 0, 0))
		if e.DateOfBirth.After(cutoff) {
			violations = append(violations, msgTooYoung)
		}
	}
	return violations
}
