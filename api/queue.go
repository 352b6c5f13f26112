package api

import (
	"context"
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/garnizeh/employees/internal/service"
	"github.com/garnizeh/employees/pkg/models"
	"github.com/garnizeh/employees/pkg/repository"
)

// EmployeeEnqueuer hands a validated employee to the asynchronous create
// path.
type EmployeeEnqueuer interface {
	EnqueueEmployee(ctx context.Context, e *models.Employee) (int64, error)
}

type QueueHandler struct {
	queue EmployeeEnqueuer
}

func NewQueueHandler(queue EmployeeEnqueuer) *QueueHandler {
	return &QueueHandler{queue: queue}
}

// SendEmployee handles POST /queue/employees: validate, enqueue, 200. The
// record is created later by the queue consumer.
func (h *QueueHandler) SendEmployee(w http.ResponseWriter, r *http.Request) {
	var e models.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, errorMessage{Info: "Invalid request body"}, http.StatusBadRequest)
		return
	}
	if violations := service.Validate(&e); len(violations) > 0 {
		writeError(w, &repository.ValidationError{Message: violations[0]})
		return
	}

	jobID, err := h.queue.EnqueueEmployee(r.Context(), &e)
	if err != nil {
		writeError(w, err)
		return
	}
	logger.Info("employee queued for creation", slog.Int64("jobId", jobID))
	w.WriteHeader(http.StatusOK)
}
