//go:build integration

package postgres_test

import (
	"testing"
	"time"

	"github.com/phrazzld/taskflow-api/internal/platform/postgres"
	"github.com/phrazzld/taskflow-api/internal/store"
	"github.com/phrazzld/taskflow-api/internal/store/storetest"
	"github.com/phrazzld/taskflow-api/internal/testdb"
)

func TestPostgresStores(t *testing.T) {
	db := testdb.OpenPostgres(t)

	storetest.Run(t, func(t *testing.T, now func() time.Time) (store.UserStore, store.TaskStore) {
		tx := testdb.BeginTx(t, db)
		return postgres.NewPostgresUserStore(tx, nil, postgres.WithClock(now)),
			postgres.NewPostgresTaskStore(tx, nil, postgres.WithClock(now))
	})
}
