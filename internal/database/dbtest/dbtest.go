// Package dbtest hands out migrated, disposable sqlite databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/weatherfav/internal/config"
	"github.com/weatherfav/internal/database"
)

// New returns a client backed by a private in-memory sqlite database with
// the full schema applied. The database is closed when the test ends.
func New(t testing.TB) *database.Client {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	client, err := database.New(config.DriverSQLite, dsn, database.Options{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return client
}
