// Package service is the business-rule layer between the request boundary
// and the store: validation before writes, existence pre-checks so update
// and delete on an unknown id report NotFound rather than a validation or
// storage failure, and plain pass-through for reads.
package service

import (
	"context"
	"log/slog"

	"github.com/garnizeh/employees/pkg/models"
	"github.com/garnizeh/employees/pkg/repository"
)

type EmployeeService struct {
	store  repository.EmployeeStore
	logger *slog.Logger
}

func New(store repository.EmployeeStore, logger *slog.Logger) *EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeService{store: store, logger: logger}
}

func (s *EmployeeService) GetAll(ctx context.Context) ([]models.Employee, error) {
	return s.store.ListAll(ctx)
}

func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	return s.store.FindByID(ctx, id)
}

func (s *EmployeeService) GetByName(ctx context.Context, firstName, lastName string) ([]models.Employee, error) {
	return s.store.FindByName(ctx, firstName, lastName)
}

func (s *EmployeeService) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// Create validates and persists a new employee. Only the first violation is
// surfaced.
func (s *EmployeeService) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if violations := Validate(e); len(violations) > 0 {
		return nil, &repository.ValidationError{Message: violations[0]}
	}
	s.logger.Debug("creating employee", "firstName", e.FirstName, "lastName", e.LastName)
	return s.store.Create(ctx, e)
}

// Update validates, confirms the id exists, then overwrites all non-id
// fields. The exists/update pair is not atomic: a concurrent delete between
// the two calls is caught by the store, which reports NotFound on a write
// that touched zero rows.
func (s *EmployeeService) Update(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if violations := Validate(e); len(violations) > 0 {
		return nil, &repository.ValidationError{Message: violations[0]}
	}
	exists, err := s.store.ExistsByID(ctx, e.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Info("employee not found for update", "id", e.EmployeeID)
		return nil, repository.NewNotFound(e.EmployeeID)
	}
	return s.store.Update(ctx, e)
}

// Delete confirms the id exists, then removes the row. Same non-atomic
// check-then-act window as Update.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	exists, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Info("employee not found for delete", "id", id)
		return repository.NewNotFound(id)
	}
	return s.store.Delete(ctx, id)
}
