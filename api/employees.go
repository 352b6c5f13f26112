package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garnizeh/employees/internal/service"
	"github.com/garnizeh/employees/pkg/models"
	"github.com/garnizeh/employees/pkg/repository"
)

type EmployeesHandler struct {
	svc *service.EmployeeService
}

func NewEmployeesHandler(svc *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{svc: svc}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// List handles GET /employees.
func (h *EmployeesHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, employees, http.StatusOK)
}

// GetByID handles GET /employees/{id}.
func (h *EmployeesHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, errorMessage{Info: "Invalid employee id"}, http.StatusBadRequest)
		return
	}
	e, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, e, http.StatusOK)
}

// Search handles GET /employees/search?firstName=&lastName=. Zero matches is
// a 404, not an empty list.
func (h *EmployeesHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employees, err := h.svc.GetByName(r.Context(), q.Get("firstName"), q.Get("lastName"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, employees, http.StatusOK)
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e models.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, errorMessage{Info: "Invalid request body"}, http.StatusBadRequest)
		return
	}
	created, err := h.svc.Create(r.Context(), &e)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, created, http.StatusCreated)
}

// Update handles PUT /employees/{id}. A body id of zero is taken as absent
// and inherits the path id; a conflicting body id fails fast before the
// service runs.
func (h *EmployeesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, errorMessage{Info: "Invalid employee id"}, http.StatusBadRequest)
		return
	}
	var e models.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, errorMessage{Info: "Invalid request body"}, http.StatusBadRequest)
		return
	}
	if e.EmployeeID != 0 && e.EmployeeID != id {
		writeError(w, repository.ErrIDMismatch)
		return
	}
	e.EmployeeID = id

	updated, err := h.svc.Update(r.Context(), &e)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

// Delete handles DELETE /employees/{id}.
func (h *EmployeesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, errorMessage{Info: "Invalid employee id"}, http.StatusBadRequest)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Count handles GET /employees/count.
func (h *EmployeesHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, count, http.StatusOK)
}
