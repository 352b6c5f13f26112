// Test helpers and mocks
package mock

import (
	"context"
	"sort"
	"strings"

	"github.com/garnizeh/employees/pkg/models"
	"github.com/garnizeh/employees/pkg/repository"
)

// Store is an in-memory EmployeeStore for service and handler tests. The
// error fields, when set, are returned by the matching call. BeforeUpdate
// and BeforeDelete run after the service's existence pre-check and before
// the write, which lets tests open the check-then-act race window.
type Store struct {
	Employees map[int64]models.Employee
	nextID    int64

	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	BeforeUpdate func()
	BeforeDelete func()
}

var _ repository.EmployeeStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{Employees: make(map[int64]models.Employee)}
}

// Seed inserts employees with fixed ids without touching the id sequence
// beyond what the seeds occupy.
func (s *Store) Seed(employees ...models.Employee) {
	for _, e := range employees {
		s.Employees[e.EmployeeID] = e
		if e.EmployeeID > s.nextID {
			s.nextID = e.EmployeeID
		}
	}
}

func (s *Store) sorted() []models.Employee {
	out := make([]models.Employee, 0, len(s.Employees))
	for _, e := range s.Employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out
}

func (s *Store) ListAll(ctx context.Context) ([]models.Employee, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.sorted(), nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (*models.Employee, error) {
	e, ok := s.Employees[id]
	if !ok {
		return nil, repository.NewNotFound(id)
	}
	return &e, nil
}

func (s *Store) FindByName(ctx context.Context, firstName, lastName string) ([]models.Employee, error) {
	var out []models.Employee
	for _, e := range s.sorted() {
		if strings.Contains(e.FirstName, firstName) && strings.Contains(e.LastName, lastName) {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, repository.NewSearchNotFound()
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	s.nextID++
	created := *e
	created.EmployeeID = s.nextID
	created.Gender = created.Gender.Normalize()
	s.Employees[created.EmployeeID] = created
	return &created, nil
}

func (s *Store) Update(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if s.BeforeUpdate != nil {
		s.BeforeUpdate()
	}
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	if _, ok := s.Employees[e.EmployeeID]; !ok {
		return nil, repository.NewNotFound(e.EmployeeID)
	}
	updated := *e
	updated.Gender = updated.Gender.Normalize()
	s.Employees[updated.EmployeeID] = updated
	return &updated, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	if s.BeforeDelete != nil {
		s.BeforeDelete()
	}
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	if _, ok := s.Employees[id]; !ok {
		return repository.NewNotFound(id)
	}
	delete(s.Employees, id)
	return nil
}

func (s *Store) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := s.Employees[id]
	return ok, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return int64(len(s.Employees)), nil
}
