package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garnizeh/employees/api"
	"github.com/garnizeh/employees/internal/service"
	"github.com/garnizeh/employees/pkg/models"
	"github.com/garnizeh/employees/pkg/repository/mock"
)

type stubEnqueuer struct {
	sent []models.Employee
	err  error
}

func (s *stubEnqueuer) EnqueueEmployee(ctx context.Context, e *models.Employee) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.sent = append(s.sent, *e)
	return int64(len(s.sent)), nil
}

func setupQueueServer(t *testing.T) (*httptest.Server, *stubEnqueuer) {
	t.Helper()
	enq := &stubEnqueuer{}
	svc := service.New(mock.NewStore(), nil)
	srv := httptest.NewServer(api.SetupRoutes("test", "now", svc, enq))
	t.Cleanup(srv.Close)
	return srv, enq
}

func TestSendEmployeeToQueue(t *testing.T) {
	srv, enq := setupQueueServer(t)

	body := map[string]any{"firstName": "Ann", "lastName": "Lee", "gender": "FEMALE"}
	res := doJSON(t, http.MethodPost, srv.URL+"/queue/employees", body)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if len(enq.sent) != 1 || enq.sent[0].FirstName != "Ann" {
		t.Fatalf("employee not enqueued: %+v", enq.sent)
	}
}

func TestSendEmployeeToQueueValidatesFirst(t *testing.T) {
	srv, enq := setupQueueServer(t)

	res := doJSON(t, http.MethodPost, srv.URL+"/queue/employees", map[string]any{"firstName": "Ann"})
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.StatusCode)
	}
	if info := decodeInfo(t, res); info != "Employee lastname cannot be empty" {
		t.Fatalf("unexpected message %q", info)
	}
	if len(enq.sent) != 0 {
		t.Fatal("invalid employee must not reach the queue")
	}
}

func TestQueueRoutesAbsentWhenDisabled(t *testing.T) {
	svc := service.New(mock.NewStore(), nil)
	srv := httptest.NewServer(api.SetupRoutes("test", "now", svc, nil))
	defer srv.Close()

	res := doJSON(t, http.MethodPost, srv.URL+"/queue/employees", map[string]any{"firstName": "Ann", "lastName": "Lee"})
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 when queue is disabled, got %d", res.StatusCode)
	}
}
