// Package gormstore is the ORM-based EmployeeStore strategy. It drives the
// same employees table as sqlstore through gorm: finders signal NotFound via
// ErrRecordNotFound, writes via rows-affected counts.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/garnizeh/employees/pkg/models"
	"github.com/garnizeh/employees/pkg/repository"
)

type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

var _ repository.EmployeeStore = (*Store)(nil)

// New opens a gorm session on the given sqlite DSN. Schema management stays
// with the embedded migrations; gorm only maps rows.
func New(dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm session: %w", err)
	}
	return &Store{db: gdb, logger: logger}, nil
}

func (s *Store) ListAll(ctx context.Context) ([]models.Employee, error) {
	employees := []models.Employee{}
	err := s.db.WithContext(ctx).Order("employee_id ASC").Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (*models.Employee, error) {
	var e models.Employee
	err := s.db.WithContext(ctx).First(&e, "employee_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.NewNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) FindByName(ctx context.Context, firstName, lastName string) ([]models.Employee, error) {
	// instr keeps the containment match case-sensitive, same as sqlstore.
	employees := []models.Employee{}
	err := s.db.WithContext(ctx).
		Where("(? = '' OR instr(first_name, ?) > 0) AND (? = '' OR instr(last_name, ?) > 0)",
			firstName, firstName, lastName, lastName).
		Order("employee_id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, repository.NewSearchNotFound()
	}
	return employees, nil
}

func (s *Store) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if e == nil {
		return nil, fmt.Errorf("employee is nil")
	}
	created := *e
	created.EmployeeID = 0 // caller-supplied ids are ignored
	created.Gender = created.Gender.Normalize()
	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	s.logger.Debug("employee inserted", "id", created.EmployeeID)
	return &created, nil
}

func (s *Store) Update(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if e == nil {
		return nil, fmt.Errorf("employee is nil")
	}

	// The probe gives this strategy its existsById flavor; the conditional
	// write below is the authoritative NotFound signal, so a row deleted
	// after the probe still surfaces NotFound.
	exists, err := s.ExistsByID(ctx, e.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.NewNotFound(e.EmployeeID)
	}

	return s.updateRow(ctx, e)
}

// updateRow overwrites all non-id columns of an existing row. Save is
// unsuitable here: it inserts when the update matches no row, which would
// resurrect a concurrently deleted employee.
func (s *Store) updateRow(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	updated := *e
	updated.Gender = updated.Gender.Normalize()
	res := s.db.WithContext(ctx).Model(&updated).Select("*").Updates(&updated)
	if res.Error != nil {
		return nil, fmt.Errorf("update employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		s.logger.Debug("update touched no rows", "id", updated.EmployeeID)
		return nil, repository.NewNotFound(updated.EmployeeID)
	}
	return &updated, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Employee{}, "employee_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		s.logger.Debug("delete touched no rows", "id", id)
		return repository.NewNotFound(id)
	}
	return nil
}

func (s *Store) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Employee{}).Where("employee_id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
