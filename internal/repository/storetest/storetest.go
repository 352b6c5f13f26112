// Package storetest is the shared contract suite for EmployeeStore
// implementations. Both strategies must pass it unmodified; it is the
// substitutability boundary in executable form.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garnizeh/employees/pkg/models"
	"github.com/garnizeh/employees/pkg/repository"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) repository.EmployeeStore

func sample(first, last string) *models.Employee {
	dep := int64(4)
	dob := models.NewDate(1990, time.June, 15)
	return &models.Employee{
		FirstName:    first,
		LastName:     last,
		DepartmentID: &dep,
		JobTitle:     "Engineer",
		Gender:       models.GenderFemale,
		DateOfBirth:  &dob,
	}
}

// Run exercises the full EmployeeStore contract against the given factory.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("ListAllEmpty", func(t *testing.T) {
		store := newStore(t)
		got, err := store.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty list, got %d rows", len(got))
		}
	})

	t.Run("CreateAssignsID", func(t *testing.T) {
		store := newStore(t)
		in := sample("Ann", "Lee")
		in.EmployeeID = 999 // caller-supplied id must be ignored
		created, err := store.Create(ctx, in)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if created.EmployeeID == 0 || created.EmployeeID == 999 {
			t.Fatalf("expected a fresh generated id, got %d", created.EmployeeID)
		}

		found, err := store.FindByID(ctx, created.EmployeeID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		want := *in
		want.EmployeeID = created.EmployeeID
		if !found.Equal(want) {
			t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", *found, want)
		}
	})

	t.Run("CreateMinimalFields", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, &models.Employee{FirstName: "Ann", LastName: "Lee"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		found, err := store.FindByID(ctx, created.EmployeeID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if found.DepartmentID != nil || found.DateOfBirth != nil || found.JobTitle != "" {
			t.Fatalf("optional fields should stay absent: %+v", *found)
		}
		if found.Gender != models.GenderUnspecified {
			t.Fatalf("gender should default to UNSPECIFIED, got %q", found.Gender)
		}
	})

	t.Run("FindByIDMissing", func(t *testing.T) {
		store := newStore(t)
		_, err := store.FindByID(ctx, 42)
		var nf *repository.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if nf.ID != 42 {
			t.Fatalf("NotFoundError should carry the id, got %d", nf.ID)
		}
	})

	t.Run("FindByIDIdempotent", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, sample("Ann", "Lee"))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		first, err := store.FindByID(ctx, created.EmployeeID)
		if err != nil {
			t.Fatalf("first FindByID: %v", err)
		}
		second, err := store.FindByID(ctx, created.EmployeeID)
		if err != nil {
			t.Fatalf("second FindByID: %v", err)
		}
		if !first.Equal(*second) {
			t.Fatalf("repeated reads differ: %+v vs %+v", *first, *second)
		}
	})

	t.Run("FindByName", func(t *testing.T) {
		store := newStore(t)
		for _, pair := range [][2]string{{"Ann", "Lee"}, {"Hanna", "Leeson"}, {"Bob", "Day"}} {
			if _, err := store.Create(ctx, sample(pair[0], pair[1])); err != nil {
				t.Fatalf("Create %v: %v", pair, err)
			}
		}

		// substring containment on both fields
		got, err := store.FindByName(ctx, "ann", "Lee")
		if err != nil {
			t.Fatalf("FindByName: %v", err)
		}
		if len(got) != 1 || got[0].FirstName != "Hanna" {
			t.Fatalf("expected only Hanna (case-sensitive containment), got %+v", got)
		}

		// empty parts match every row, ordered by id
		all, err := store.FindByName(ctx, "", "")
		if err != nil {
			t.Fatalf("FindByName empty: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(all))
		}
		for i := 1; i < len(all); i++ {
			if all[i-1].EmployeeID >= all[i].EmployeeID {
				t.Fatalf("rows not ordered by id: %+v", all)
			}
		}

		// zero matches is NotFound, not an empty list
		_, err = store.FindByName(ctx, "Zed", "")
		if !repository.IsNotFound(err) {
			t.Fatalf("expected NotFound for zero matches, got %v", err)
		}
		if err.Error() != "Employee was not found in database" {
			t.Fatalf("unexpected search miss message %q", err.Error())
		}
	})

	t.Run("Update", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, sample("Ann", "Lee"))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}

		changed := *created
		changed.FirstName = "Anne"
		changed.JobTitle = "Manager"
		changed.DepartmentID = nil
		updated, err := store.Update(ctx, &changed)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.EmployeeID != created.EmployeeID {
			t.Fatalf("update must not reassign the id: %d", updated.EmployeeID)
		}

		found, err := store.FindByID(ctx, created.EmployeeID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if !found.Equal(changed) {
			t.Fatalf("update not persisted:\n got %+v\nwant %+v", *found, changed)
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		store := newStore(t)
		ghost := sample("Ann", "Lee")
		ghost.EmployeeID = 99
		_, err := store.Update(ctx, ghost)
		if !repository.IsNotFound(err) {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, sample("Ann", "Lee"))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := store.Delete(ctx, created.EmployeeID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := store.FindByID(ctx, created.EmployeeID); !repository.IsNotFound(err) {
			t.Fatalf("expected NotFound after delete, got %v", err)
		}
		if err := store.Delete(ctx, created.EmployeeID); !repository.IsNotFound(err) {
			t.Fatalf("expected NotFound for second delete, got %v", err)
		}
	})

	t.Run("ExistsByID", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, sample("Ann", "Lee"))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		exists, err := store.ExistsByID(ctx, created.EmployeeID)
		if err != nil || !exists {
			t.Fatalf("expected exists=true, got %v, %v", exists, err)
		}
		exists, err = store.ExistsByID(ctx, created.EmployeeID+1000)
		if err != nil || exists {
			t.Fatalf("expected exists=false, got %v, %v", exists, err)
		}
	})

	t.Run("CountMatchesListAll", func(t *testing.T) {
		store := newStore(t)
		for i, pair := range [][2]string{{"Ann", "Lee"}, {"Bob", "Day"}, {"Cid", "Fox"}} {
			if _, err := store.Create(ctx, sample(pair[0], pair[1])); err != nil {
				t.Fatalf("Create %d: %v", i, err)
			}
			count, err := store.Count(ctx)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			all, err := store.ListAll(ctx)
			if err != nil {
				t.Fatalf("ListAll: %v", err)
			}
			if count != int64(len(all)) {
				t.Fatalf("count %d != len(listAll) %d", count, len(all))
			}
		}
	})
}
