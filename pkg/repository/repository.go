// Package repository defines the persistence contract for employees. These
// are the public contracts consumers should depend on; concrete
// implementations live under internal/.
package repository

import (
	"context"

	"github.com/garnizeh/employees/pkg/models"
)

// EmployeeStore is the storage boundary. Two interchangeable implementations
// exist (direct SQL and ORM-based); any behavior asserted against this
// interface must hold for both.
//
// ListAll and FindByName return rows ordered by id ascending. An empty table
// gives ListAll an empty slice, but FindByName with zero matches fails with
// *NotFoundError: search absence is an error in this service, not an empty
// list (see DESIGN.md).
type EmployeeStore interface {
	ListAll(ctx context.Context) ([]models.Employee, error)

	// FindByID fails with *NotFoundError when no row has that id.
	FindByID(ctx context.Context, id int64) (*models.Employee, error)

	// FindByName matches by case-sensitive substring containment on both
	// fields. An empty part matches every row.
	FindByName(ctx context.Context, firstName, lastName string) ([]models.Employee, error)

	// Create assigns a new id atomically with the insert and returns the
	// persisted row. Any caller-supplied id is ignored.
	Create(ctx context.Context, e *models.Employee) (*models.Employee, error)

	// Update overwrites all non-id fields of an existing row and returns the
	// updated row, or fails with *NotFoundError.
	Update(ctx context.Context, e *models.Employee) (*models.Employee, error)

	// Delete removes the row, or fails with *NotFoundError.
	Delete(ctx context.Context, id int64) error

	// ExistsByID is a side-effect-free existence probe.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	Count(ctx context.Context) (int64, error)
}
