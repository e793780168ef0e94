package services

import (
	"context"
	"os"
	"testing"

	"datasheet_studio_go/config"
	"datasheet_studio_go/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB initializes an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	// every pooled connection would open its own empty in-memory database
	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// Migrate schemas
	err = db.AutoMigrate(&models.DocumentSnapshot{}, &models.ExportRecord{})
	assert.NoError(t, err)

	return db
}

func exerciseSnapshotStore(t *testing.T, store SnapshotStore, key string) {
	ctx := context.Background()

	_, found, err := store.Load(ctx, key)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, store.Save(ctx, key, `{"theme":"angle"}`))
	data, found, err := store.Load(ctx, key)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"theme":"angle"}`, data)

	// Overwrite keeps a single value per key
	assert.NoError(t, store.Save(ctx, key, `{"theme":"minimal"}`))
	data, _, _ = store.Load(ctx, key)
	assert.Equal(t, `{"theme":"minimal"}`, data)

	assert.NoError(t, store.Clear(ctx, key))
	_, found, err = store.Load(ctx, key)
	assert.NoError(t, err)
	assert.False(t, found)

	// Clearing a missing key is not an error
	assert.NoError(t, store.Clear(ctx, key))
}

func TestMemorySnapshotStore(t *testing.T) {
	exerciseSnapshotStore(t, NewMemorySnapshotStore(), "harvester-datasheet-data")
}

func TestGormSnapshotStore(t *testing.T) {
	db := setupTestDB(t)
	exerciseSnapshotStore(t, NewGormSnapshotStore(db), "harvester-datasheet-data")

	var count int64
	db.Model(&models.DocumentSnapshot{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRedisSnapshotStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping redis snapshot test: REDIS_ADDR not set")
	}

	store := NewRedisSnapshotStore(&redis.Options{Addr: addr})
	defer store.Close()
	exerciseSnapshotStore(t, store, "test-datasheet-snapshot")
}

func TestNewSnapshotStore(t *testing.T) {
	store, err := NewSnapshotStore(&config.Config{SnapshotBackend: config.SnapshotBackendMemory}, nil)
	assert.NoError(t, err)
	assert.IsType(t, &MemorySnapshotStore{}, store)

	_, err = NewSnapshotStore(&config.Config{SnapshotBackend: config.SnapshotBackendSQLite}, nil)
	assert.Error(t, err)

	store, err = NewSnapshotStore(&config.Config{SnapshotBackend: config.SnapshotBackendSQLite}, setupTestDB(t))
	assert.NoError(t, err)
	assert.IsType(t, &GormSnapshotStore{}, store)

	store, err = NewSnapshotStore(&config.Config{SnapshotBackend: config.SnapshotBackendRedis, RedisAddr: "localhost:6379"}, nil)
	assert.NoError(t, err)
	assert.IsType(t, &RedisSnapshotStore{}, store)
}
