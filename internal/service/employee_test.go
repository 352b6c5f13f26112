package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garnizeh/employees/internal/service"
	"github.com/garnizeh/employees/pkg/models"
	"github.com/garnizeh/employees/pkg/repository"
	"github.com/garnizeh/employees/pkg/repository/mock"
)

func valid() *models.Employee {
	dob := models.NewDate(1990, time.June, 15)
	return &models.Employee{FirstName: "Ann", LastName: "Lee", Gender: models.GenderFemale, DateOfBirth: &dob}
}

func TestValidateOrder(t *testing.T) {
	young := models.DateOf(time.Now().UTC().AddDate(-17, 0, 0))
	e := &models.Employee{DateOfBirth: &young}
	violations := service.Validate(e)
	want := []string{
		"Employee firstname cannot be empty",
		"Employee lastname cannot be empty",
		"The employee must be over 18 years old",
	}
	if len(violations) != len(want) {
		t.Fatalf("got %d violations: %v", len(violations), violations)
	}
	for i := range want {
		if violations[i] != want[i] {
			t.Errorf("violation %d: got %q want %q", i, violations[i], want[i])
		}
	}
}

func TestValidateAgeBoundary(t *testing.T) {
	exactly18 := models.DateOf(time.Now().UTC().AddDate(-18, 0, 0))
	e := valid()
	e.DateOfBirth = &exactly18
	if v := service.Validate(e); len(v) != 0 {
		t.Fatalf("exactly 18 years old must be accepted, got %v", v)
	}

	dayShort := models.DateOf(time.Now().UTC().AddDate(-18, 0, 1))
	e.DateOfBirth = &dayShort
	if v := service.Validate(e); len(v) != 1 || v[0] != "The employee must be over 18 years old" {
		t.Fatalf("one day short of 18 must be rejected, got %v", v)
	}
}

func TestValidateNoDateOfBirth(t *testing.T) {
	e := &models.Employee{FirstName: "Ann", LastName: "Lee"}
	if v := service.Validate(e); len(v) != 0 {
		t.Fatalf("dateOfBirth is optional, got %v", v)
	}
}

func TestCreate(t *testing.T) {
	store := mock.NewStore()
	svc := service.New(store, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, valid())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.EmployeeID == 0 {
		t.Fatal("expected assigned id")
	}
}

func TestCreateSurfacesFirstViolation(t *testing.T) {
	store := mock.NewStore()
	svc := service.New(store, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.Employee{})
	var ve *repository.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "Employee firstname cannot be empty" {
		t.Fatalf("expected the first violation only, got %q", ve.Message)
	}
	if len(store.Employees) != 0 {
		t.Fatal("invalid employee must not reach the store")
	}
}

func TestCreateValidationMessages(t *testing.T) {
	ctx := context.Background()
	young := models.DateOf(time.Now().UTC().AddDate(-17, 0, 0))

	cases := []struct {
		name   string
		mutate func(e *models.Employee)
		want   string
	}{
		{"firstName", func(e *models.Employee) { e.FirstName = "" }, "Employee firstname cannot be empty"},
		{"lastName", func(e *models.Employee) { e.LastName = "" }, "Employee lastname cannot be empty"},
		{"age", func(e *models.Employee) { e.DateOfBirth = &young }, "The employee must be over 18 years old"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.New(mock.NewStore(), nil)
			e := valid()
			tc.mutate(e)
			_, err := svc.Create(ctx, e)
			var ve *repository.ValidationError
			if !errors.As(err, &ve) || ve.Message != tc.want {
				t.Fatalf("got %v, want message %q", err, tc.want)
			}

			// the same rules guard update
			e.EmployeeID = 1
			_, err = svc.Update(ctx, e)
			if !errors.As(err, &ve) || ve.Message != tc.want {
				t.Fatalf("update: got %v, want message %q", err, tc.want)
			}
		})
	}
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	store := mock.NewStore()
	svc := service.New(store, nil)
	ctx := context.Background()

	e := valid()
	e.EmployeeID = 99
	_, err := svc.Update(ctx, e)
	var nf *repository.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.ID != 99 {
		t.Fatalf("expected id 99 in error, got %d", nf.ID)
	}
}

func TestUpdate(t *testing.T) {
	store := mock.NewStore()
	svc := service.New(store, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, valid())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	changed := *created
	changed.JobTitle = "Manager"
	updated, err := svc.Update(ctx, &changed)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.JobTitle != "Manager" {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestDelete(t *testing.T) {
	store := mock.NewStore()
	svc := service.New(store, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, valid())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.EmployeeID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, created.EmployeeID); !repository.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

// The exists/act pair in Update and Delete is not atomic. A row removed
// between the two calls surfaces as NotFound from the store's conditional
// write, never as a silent no-op.
func TestUpdateRacingDelete(t *testing.T) {
	store := mock.NewStore()
	svc := service.New(store, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, valid())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	store.BeforeUpdate = func() {
		delete(store.Employees, created.EmployeeID)
	}

	_, err = svc.Update(ctx, created)
	if !repository.IsNotFound(err) {
		t.Fatalf("racing delete should surface as NotFound, got %v", err)
	}
}

func TestReadPassThroughs(t *testing.T) {
	store := mock.NewStore()
	svc := service.New(store, nil)
	ctx := context.Background()

	for _, name := range []string{"Ann", "Bob", "Cid"} {
		e := valid()
		e.FirstName = name
		if _, err := svc.Create(ctx, e); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	all, err := svc.GetAll(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("GetAll: %v, %d rows", err, len(all))
	}
	count, err := svc.Count(ctx)
	if err != nil || count != 3 {
		t.Fatalf("Count: %v, %d", err, count)
	}
	got, err := svc.GetByID(ctx, all[0].EmployeeID)
	if err != nil || got.FirstName != "Ann" {
		t.Fatalf("GetByID: %v, %+v", err, got)
	}
	byName, err := svc.GetByName(ctx, "Bob", "")
	if err != nil || len(byName) != 1 {
		t.Fatalf("GetByName: %v, %+v", err, byName)
	}
	if _, err := svc.GetByName(ctx, "Zed", ""); !repository.IsNotFound(err) {
		t.Fatalf("expected NotFound for zero search matches, got %v", err)
	}
}
