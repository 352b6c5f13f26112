package models

import (
	"encoding/json"
	"fmt"
)

// Domain model matching the employees table in db/migrations/0001_init.sql

// Gender is the employee gender enum stored as text.
type Gender string

const (
	GenderMale        Gender = "MALE"
	GenderFemale      Gender = "FEMALE"
	GenderUnspecified Gender = "UNSPECIFIED"
)

// Normalize maps the empty value to UNSPECIFIED.
func (g Gender) Normalize() Gender {
	if g == "" {
		return GenderUnspecified
	}
	return g
}

// Valid reports whether g is one of the known enum values. The empty value
// is valid because it normalizes to UNSPECIFIED.
func (g Gender) Valid() bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderUnspecified:
		return true
	}
	return false
}

// UnmarshalJSON rejects unknown enum values and normalizes the empty one.
func (g *Gender) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := Gender(s)
	if !v.Valid() {
		return fmt.Errorf("invalid gender %q", s)
	}
	*g = v.Normalize()
	return nil
}

// Employee is one row of the employees table. EmployeeID is assigned by the
// store on create and never reassigned by update.
type Employee struct {
	EmployeeID   int64  `json:"employeeId" gorm:"column:employee_id;primaryKey;autoIncrement"`
	FirstName    string `json:"firstName" gorm:"column:first_name"`
	LastName     string `json:"lastName" gorm:"column:last_name"`
	DepartmentID *int64 `json:"departmentId" gorm:"column:department_id"`
	JobTitle     string `json:"jobTitle,omitempty" gorm:"column:job_title"`
	Gender       Gender `json:"gender" gorm:"column:gender"`
	DateOfBirth  *Date  `json:"dateOfBirth,omitempty" gorm:"column:date_of_birth"`
}

// TableName keeps both store strategies on the same table.
func (Employee) TableName() string { return "employees" }

// Equal compares all seven fields. Gender compares after normalization so a
// zero value and an explicit UNSPECIFIED are the same employee.
func (e Employee) Equal(o Employee) bool {
	if e.EmployeeID != o.EmployeeID ||
		e.FirstName != o.FirstName ||
		e.LastName != o.LastName ||
		e.JobTitle != o.JobTitle ||
		e.Gender.Normalize() != o.Gender.Normalize() {
		return false
	}
	if (e.DepartmentID == nil) != (o.DepartmentID == nil) {
		return false
	}
	if e.DepartmentID != nil && *e.DepartmentID != *o.DepartmentID {
		return false
	}
	if (e.DateOfBirth == nil) != (o.DateOfBirth == nil) {
		return false
	}
	if e.DateOfBirth != nil && !e.DateOfBirth.Equal(*o.DateOfBirth) {
		return false
	}
	return true
}
