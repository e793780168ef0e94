package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"datasheet_studio_go/config"
	"datasheet_studio_go/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotStore is the key/value persistence collaborator for serialized documents
type SnapshotStore interface {
	Save(ctx context.Context, key string, data string) error
	Load(ctx context.Context, key string) (string, bool, error) // data, found, error
	Clear(ctx context.Context, key string) error
}

// NewSnapshotStore builds the store selected by configuration
func NewSnapshotStore(cfg *config.Config, database *gorm.DB) (SnapshotStore, error) {
	switch cfg.SnapshotBackend {
	case config.SnapshotBackendRedis:
		store := NewRedisSnapshotStore(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		log.Printf("[INFO] Snapshot store: redis (%s)", cfg.RedisAddr)
		return store, nil
	case config.SnapshotBackendMemory:
		log.Println("[INFO] Snapshot store: memory (state is lost on restart)")
		return NewMemorySnapshotStore(), nil
	default:
		if database == nil {
			return nil, fmt.Errorf("sqlite snapshot store requires a database")
		}
		log.Println("[INFO] Snapshot store: database")
		return NewGormSnapshotStore(database), nil
	}
}

// GormSnapshotStore keeps snapshots in the document_snapshots table
type GormSnapshotStore struct {
	DB *gorm.DB
}

func NewGormSnapshotStore(db *gorm.DB) *GormSnapshotStore {
	return &GormSnapshotStore{DB: db}
}

func (s *GormSnapshotStore) Save(ctx context.Context, key string, data string) error {
	snapshot := models.DocumentSnapshot{Key: key, Data: data}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snapshot).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *GormSnapshotStore) Load(ctx context.Context, key string) (string, bool, error) {
	var snapshot models.DocumentSnapshot
	err := s.DB.WithContext(ctx).First(&snapshot, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return snapshot.Data, true, nil
}

func (s *GormSnapshotStore) Clear(ctx context.Context, key string) error {
	if err := s.DB.WithContext(ctx).Delete(&models.DocumentSnapshot{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}

// RedisSnapshotStore keeps snapshots as plain redis strings
type RedisSnapshotStore struct {
	client *redis.Client
}

func NewRedisSnapshotStore(opts *redis.Options) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: redis.NewClient(opts)}
}

func (s *RedisSnapshotStore) Save(ctx context.Context, key string, data string) error {
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore) Load(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return val, true, nil
}

func (s *RedisSnapshotStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}

// Close releases the redis connection pool
func (s *RedisSnapshotStore) Close() error {
	return s.client.Close()
}

// MemorySnapshotStore keeps snapshots in process memory
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string]string)}
}

func (s *MemorySnapshotStore) Save(ctx context.Context, key string, data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	return nil
}

func (s *MemorySnapshotStore) Load(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok, nil
}

func (s *MemorySnapshotStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
