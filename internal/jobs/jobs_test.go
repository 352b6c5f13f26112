package jobs_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	migrations "github.com/garnizeh/employees/db"
	dbpkg "github.com/garnizeh/employees/internal/db"
	"github.com/garnizeh/employees/internal/jobs"
	"github.com/garnizeh/employees/internal/repository/sqlstore"
	"github.com/garnizeh/employees/internal/service"
	"github.com/garnizeh/employees/pkg/models"
)

var dbSeq atomic.Int64

func setup(t *testing.T) (*dbpkg.DB, *service.EmployeeService) {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:jobs_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	d, err := dbpkg.New(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := dbpkg.Migrate(ctx, d, migrations.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d, service.New(sqlstore.New(d, nil), nil)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestEnqueueAndCreateEmployee(t *testing.T) {
	ctx := context.Background()
	d, svc := setup(t)

	repo := jobs.NewRepository(d, 3)
	handlers := map[string]jobs.Handler{
		jobs.TypeEmployeeCreate: jobs.CreateEmployeeHandler(svc, nil),
	}
	pool := jobs.NewWorkerPool(repo, handlers, nil, 1)
	pool.Start(ctx)
	defer pool.Stop()

	dob := models.NewDate(1990, time.June, 15)
	e := &models.Employee{FirstName: "Ann", LastName: "Lee", Gender: models.GenderFemale, DateOfBirth: &dob}
	if _, err := repo.EnqueueEmployee(ctx, e); err != nil {
		t.Fatalf("EnqueueEmployee: %v", err)
	}

	waitFor(t, "queued employee to be created", func() bool {
		count, err := svc.Count(ctx)
		return err == nil && count == 1
	})

	found, err := svc.GetByName(ctx, "Ann", "Lee")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if len(found) != 1 || found[0].DateOfBirth == nil || !found[0].DateOfBirth.Equal(dob) {
		t.Fatalf("queued create lost fields: %+v", found)
	}
}

func TestEnqueueEmployeeNormalizesGender(t *testing.T) {
	ctx := context.Background()
	d, _ := setup(t)

	repo := jobs.NewRepository(d, 3)
	e := &models.Employee{FirstName: "Ann", LastName: "Lee"}
	if _, err := repo.EnqueueEmployee(ctx, e); err != nil {
		t.Fatalf("EnqueueEmployee: %v", err)
	}

	j, err := repo.FetchNext(ctx)
	if err != nil || j == nil {
		t.Fatalf("FetchNext: %v, %v", j, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(j.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["gender"] != "UNSPECIFIED" {
		t.Fatalf("gender should be normalized in the payload, got %v", payload["gender"])
	}
}

func TestInvalidPayloadMovesToDeadLetter(t *testing.T) {
	ctx := context.Background()
	d, svc := setup(t)

	repo := jobs.NewRepository(d, 1) // one attempt, straight to the dead letter table
	handlers := map[string]jobs.Handler{
		jobs.TypeEmployeeCreate: jobs.CreateEmployeeHandler(svc, nil),
	}
	pool := jobs.NewWorkerPool(repo, handlers, nil, 1)
	pool.Start(ctx)
	defer pool.Stop()

	bad := &jobs.Job{Type: jobs.TypeEmployeeCreate, Payload: json.RawMessage(`{"firstName": 5}`), ScheduledAt: time.Now()}
	if _, err := repo.Enqueue(ctx, bad); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	waitFor(t, "job to reach dead letter", func() bool {
		var n int64
		row := d.QueryRow(ctx, `SELECT COUNT(*) FROM dead_letter_jobs`)
		return row.Scan(&n) == nil && n == 1
	})

	count, err := svc.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("invalid payload must not create an employee, count=%d", count)
	}
}

func TestFetchNextClaimsJob(t *testing.T) {
	ctx := context.Background()
	d, _ := setup(t)

	repo := jobs.NewRepository(d, 3)
	if _, err := repo.EnqueueEmployee(ctx, &models.Employee{FirstName: "Ann", LastName: "Lee"}); err != nil {
		t.Fatalf("EnqueueEmployee: %v", err)
	}

	first, err := repo.FetchNext(ctx)
	if err != nil || first == nil {
		t.Fatalf("first FetchNext: %v, %v", first, err)
	}
	second, err := repo.FetchNext(ctx)
	if err != nil {
		t.Fatalf("second FetchNext: %v", err)
	}
	if second != nil {
		t.Fatalf("claimed job fetched twice: %+v", second)
	}
}

func TestBackoffDuration(t *testing.T) {
	if d := jobs.BackoffDuration(0); d != time.Second {
		t.Fatalf("attempt 0: %v", d)
	}
	if d := jobs.BackoffDuration(3); d != 8*time.Second {
		t.Fatalf("attempt 3: %v", d)
	}
	if d := jobs.BackoffDuration(30); d != 5*time.Minute {
		t.Fatalf("backoff should cap at 5m, got %v", d)
	}
}
