package db

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/team-scheduler/internal/config"
	"github.com/BruksfildServices01/team-scheduler/internal/models"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=1", sqliteDSN(""))
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=1", sqliteDSN(" :MEMORY: "))
	assert.Equal(t, "file:./data/x.sqlite?_foreign_keys=1&_journal_mode=WAL", sqliteDSN("./data/x.sqlite"))
}

func TestNewDB_InMemorySQLiteSharesSchemaAcrossPool(t *testing.T) {
	gdb, err := NewDB(config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         ":memory:",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	// a connection taken straight from the pool sees the migrated tables
	conn, err := sqlDB.Conn(context.Background())
	require.NoError(t, err)
	var n int
	require.NoError(t, conn.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'users'").Scan(&n))
	assert.Equal(t, 1, n)
	require.NoError(t, conn.Close())

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- gdb.Create(&models.User{
				Name:     "pool",
				Handle:   fmt.Sprintf("pool-%d", i),
				Timezone: "UTC",
			}).Error
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, gdb.Model(&models.User{}).Where("handle LIKE ?", "pool-%").Count(&count).Error)
	assert.Equal(t, int64(10), count)
}
