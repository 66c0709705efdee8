package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"MedicAid/cache"
	"MedicAid/database"
	"MedicAid/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	PatientRecordCacheExpiry = 7 * 24 * time.Hour
)

// PatientRecordRepository persists whole patient records as JSONB blobs,
// one row per record key, last-write-wins. Reads go through a Redis
// cache-aside layer; writes invalidate it.
type PatientRecordRepository struct {
	cache *cache.Cache
}

func NewPatientRecordRepository(cache *cache.Cache) *PatientRecordRepository {
	return &PatientRecordRepository{cache: cache}
}

// Save upserts the full record under its key. There are no partial updates
// and no transactions across patients; callers hold the record lock when
// performing read-modify-write sequences.
func (r *PatientRecordRepository) Save(ctx context.Context, record *models.PatientRecord) error {
	if record.ID == "" {
		return errors.New("patient record has no id")
	}

	blob, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal patient record: %w", err)
	}

	doc := models.PatientDocument{ID: record.ID, Document: blob}
	err = database.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to save patient record: %w", err)
	}

	cacheKey := r.getRecordCacheKey(record.ID)
	if err := r.cache.Set(ctx, cacheKey, blob, PatientRecordCacheExpiry); err != nil {
		log.Printf("Failed to refresh patient record cache: %v", err)
	}
	return nil
}

// Load returns the record stored under key, or nil when absent.
func (r *PatientRecordRepository) Load(ctx context.Context, key string) (*models.PatientRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getRecordCacheKey(key)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var record models.PatientRecord
		if err := json.Unmarshal([]byte(cached), &record); err == nil {
			return &record, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get patient record from cache: %v", err)
	}

	var doc models.PatientDocument
	err = database.DB.WithContext(ctx).First(&doc, "id = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load patient record: %w", err)
	}

	var record models.PatientRecord
	if err := json.Unmarshal(doc.Document, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal patient record: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, []byte(doc.Document), PatientRecordCacheExpiry); err != nil {
		log.Printf("Failed to set patient record in cache: %v", err)
	}

	return &record, nil
}

// WithRecordLock runs fn while holding the per-record write lock, retrying
// acquisition a few times. Serializes concurrent merge-and-save operations
// for the same patient so a slow upload cannot silently lose an update.
func (r *PatientRecordRepository) WithRecordLock(ctx context.Context, key string, fn func() error) error {
	lockKey := fmt.Sprintf("patient_record_lock:%s", key)
	lockValue := uuid.New().String()

	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 30*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire record lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release record lock: %v", err)
		}
	}()

	return fn()
}

func (r *PatientRecordRepository) getRecordCacheKey(key string) string {
	return fmt.Sprintf("patient_record_cache:%s", key)
}
