package sqlstore_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	migrations "github.com/garnizeh/employees/db"
	dbpkg "github.com/garnizeh/employees/internal/db"
	"github.com/garnizeh/employees/internal/repository/sqlstore"
	"github.com/garnizeh/employees/internal/repository/storetest"
	"github.com/garnizeh/employees/pkg/repository"
)

var dbSeq atomic.Int64

// each factory call gets its own named in-memory database so subtests do not
// share state through the sqlite shared cache
func newStore(t *testing.T) repository.EmployeeStore {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:sqlstore_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	d, err := dbpkg.New(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, migrations.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqlstore.New(d, nil)
}

func TestEmployeeStoreContract(t *testing.T) {
	storetest.Run(t, newStore)
}
