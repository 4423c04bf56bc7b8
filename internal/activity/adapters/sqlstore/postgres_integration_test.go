//go:build integration

package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"activity-dashboard-service/internal/activity/core/domain"
)

func TestActivityRepository_Postgres(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("activity"),
		postgrescontainer.WithUsername("platform"),
		postgrescontainer.WithPassword("platform"),
		postgrescontainer.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	for _, driver := range []string{DriverPostgres, DriverPgx} {
		t.Run(driver, func(t *testing.T) {
			db, err := Open(ctx, driver, connStr)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			db.MustExecContext(ctx, `CREATE TABLE IF NOT EXISTS temporal_amad (
				fecha DATE,
				hora TIME,
				origen TEXT,
				totalporconcepto INTEGER
			)`)
			db.MustExecContext(ctx, `TRUNCATE temporal_amad`)
			db.MustExecContext(ctx, `INSERT INTO temporal_amad VALUES
				('2024-01-01', '08:15:00', 'web', 4),
				('2024-01-02', '21:00:00', 'app', NULL)`)

			repo, err := NewActivityRepository(NewSQLDB(db), driver, "temporal_amad", domain.DefaultColumnMapping())
			require.NoError(t, err)

			tbl, err := repo.LoadActivity(ctx)
			require.NoError(t, err)
			require.Len(t, tbl.Rows, 2)

			for _, r := range tbl.Rows {
				require.NotNil(t, r.Date)
				require.NotNil(t, r.Hour)
			}
			v, ok := tbl.Rows[0].Number(domain.FieldTotalByConcept)
			require.True(t, ok)
			require.Equal(t, 4.0, v)
		})
	}
}
