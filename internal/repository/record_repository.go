package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one serialized value in the ledger's key-value namespace.
type Record struct {
	Key       string `gorm:"primaryKey"`
	Value     string // UTF-8 JSON
	UpdatedAt time.Time
}

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("record not found")

// RecordRepository handles CRUD for namespaced records.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Get returns the serialized value stored under key.
func (r *RecordRepository) Get(ctx context.Context, key string) (string, error) {
	var rec Record
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get record %q: %w", key, err)
	}
	return rec.Value, nil
}

// Put upserts the serialized value for key.
func (r *RecordRepository) Put(ctx context.Context, key, value string) error {
	rec := Record{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error; err != nil {
		return fmt.Errorf("put record %q: %w", key, err)
	}
	return nil
}

// Delete removes the record for key. Missing keys are not an error.
func (r *RecordRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Where("key = ?", key).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}
