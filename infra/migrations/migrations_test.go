package migrations

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestLatestVersion(t *testing.T) {
	v, err := LatestVersion()
	require.NoError(t, err)
	assert.EqualValues(t, 2, v)
}

func TestState_Pending(t *testing.T) {
	assert.EqualValues(t, 2, State{Latest: 2}.Pending())
	assert.EqualValues(t, 0, State{Version: 2, Latest: 2}.Pending())
}

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()
	container, err := tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	return sqlDB
}

func TestMigrateUpAndCardNumberDefault(t *testing.T) {
	db := startPostgres(t)

	st, err := Status(db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Pending())

	require.NoError(t, MigrateUp(db))
	require.NoError(t, MigrateUp(db), "second run is a no-op")
	require.NoError(t, Check(db))

	_, err = db.Exec(`INSERT INTO payments (id, amount) VALUES (gen_random_uuid(), 10)`)
	require.NoError(t, err)
	var card string
	require.NoError(t, db.QueryRow(`SELECT card_number FROM payments`).Scan(&card))
	assert.Equal(t, "4567", card)

	var n int
	require.NoError(t, db.QueryRow(
		`SELECT count(*) FROM information_schema.columns
		 WHERE table_name = 'payments' AND column_name IN ('status', 'subscription_plan_id', 'transaction_id')`,
	).Scan(&n))
	assert.Zero(t, n)

	require.NoError(t, MigrateDown(db))
	require.NoError(t, db.QueryRow(
		`SELECT count(*) FROM information_schema.columns
		 WHERE table_name = 'payments' AND column_name IN ('status', 'subscription_plan_id', 'transaction_id')`,
	).Scan(&n))
	assert.Equal(t, 3, n)
}
