// Package sqlstore is the direct-SQL EmployeeStore strategy. Writes that
// require an existing row are single conditional statements: a zero
// rows-affected result is the NotFound signal, so there is no window between
// an existence check and the write.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/garnizeh/employees/internal/db"
	"github.com/garnizeh/employees/pkg/models"
	"github.com/garnizeh/employees/pkg/repository"
)

type Store struct {
	conn   *db.DB
	logger *slog.Logger
}

var _ repository.EmployeeStore = (*Store)(nil)

func New(conn *db.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{conn: conn, logger: logger}
}

const employeeColumns = `employee_id, first_name, last_name, department_id, job_title, gender, date_of_birth`

func scanEmployee(row interface{ Scan(...any) error }) (*models.Employee, error) {
	var (
		e     models.Employee
		depID sql.NullInt64
		title sql.NullString
		dob   sql.NullString
	)
	if err := row.Scan(&e.EmployeeID, &e.FirstName, &e.LastName, &depID, &title, &e.Gender, &dob); err != nil {
		return nil, err
	}
	if depID.Valid {
		e.DepartmentID = &depID.Int64
	}
	if title.Valid {
		e.JobTitle = title.String
	}
	if dob.Valid {
		d, err := models.ParseDate(dob.String)
		if err != nil {
			return nil, fmt.Errorf("scan date_of_birth: %w", err)
		}
		e.DateOfBirth = &d
	}
	return &e, nil
}

// writeArgs binds the non-id columns, mapping optional fields to NULL.
func writeArgs(e *models.Employee) []any {
	var depID any
	if e.DepartmentID != nil {
		depID = *e.DepartmentID
	}
	var title any
	if e.JobTitle != "" {
		title = e.JobTitle
	}
	var dob any
	if e.DateOfBirth != nil {
		dob = e.DateOfBirth.String()
	}
	return []any{e.FirstName, e.LastName, depID, title, string(e.Gender.Normalize()), dob}
}

func (s *Store) queryMany(ctx context.Context, query string, args ...any) ([]models.Employee, error) {
	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *Store) ListAll(ctx context.Context) ([]models.Employee, error) {
	return s.queryMany(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY employee_id ASC`)
}

func (s *Store) FindByID(ctx context.Context, id int64) (*models.Employee, error) {
	row := s.conn.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_id = ?`, id)
	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, repository.NewNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) FindByName(ctx context.Context, firstName, lastName string) ([]models.Employee, error) {
	// instr keeps the containment match case-sensitive; LIKE would fold
	// ASCII case. An empty part matches every row.
	const q = `SELECT ` + employeeColumns + ` FROM employees
		WHERE (? = '' OR instr(first_name, ?) > 0)
		  AND (? = '' OR instr(last_name, ?) > 0)
		ORDER BY employee_id ASC`
	found, err := s.queryMany(ctx, q, firstName, firstName, lastName, lastName)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, repository.NewSearchNotFound()
	}
	return found, nil
}

func (s *Store) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if e == nil {
		return nil, fmt.Errorf("employee is nil")
	}

	// RETURNING makes generated-key retrieval atomic with the insert.
	const q = `INSERT INTO employees (first_name, last_name, department_id, job_title, gender, date_of_birth)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING employee_id`
	created := *e
	created.Gender = created.Gender.Normalize()
	row := s.conn.QueryRow(ctx, q, writeArgs(e)...)
	if err := row.Scan(&created.EmployeeID); err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	s.logger.Debug("employee inserted", "id", created.EmployeeID)
	return &created, nil
}

func (s *Store) Update(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if e == nil {
		return nil, fmt.Errorf("employee is nil")
	}

	const q = `UPDATE employees SET first_name = ?, last_name = ?, department_id = ?, job_title = ?, gender = ?, date_of_birth = ?
		WHERE employee_id = ?`
	args := append(writeArgs(e), e.EmployeeID)
	res, err := s.conn.Exec(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		s.logger.Debug("update touched no rows", "id", e.EmployeeID)
		return nil, repository.NewNotFound(e.EmployeeID)
	}
	updated := *e
	updated.Gender = updated.Gender.Normalize()
	return &updated, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.conn.Exec(ctx, `DELETE FROM employees WHERE employee_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		s.logger.Debug("delete touched no rows", "id", id)
		return repository.NewNotFound(id)
	}
	return nil
}

func (s *Store) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	row := s.conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = ?)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	row := s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM employees`)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
