package services

import (
	"context"
	"sync/atomic"

	"gorm.io/gorm"

	"kleincompress/internal/common"
	"kleincompress/internal/models"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// StatisticsService stores one record per compression job and keeps
// counters for the running process.
type StatisticsService struct {
	db *gorm.DB

	sessionFiles atomic.Int64
	sessionSaved atomic.Int64
}

// Totals aggregates completed jobs.
type Totals struct {
	FilesCompressed int64
	DataSaved       int64
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{db: db}
}

// Record stores a finished job. Completed jobs also count towards the
// session totals.
func (s *StatisticsService) Record(ctx context.Context, record *models.CompressionRecord) error {
	if record.ID == "" {
		record.ID = common.GenerateUUID()
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return err
	}

	if record.Status == common.StatusCompleted {
		s.sessionFiles.Add(1)
		s.sessionSaved.Add(record.OriginalSize - record.CompressedSize)
	}
	return nil
}

// Totals sums every completed job in the database.
func (s *StatisticsService) Totals(ctx context.Context) (*Totals, error) {
	var totals Totals
	err := s.db.WithContext(ctx).
		Model(&models.CompressionRecord{}).
		Select("COUNT(*) AS files_compressed, COALESCE(SUM(original_size - compressed_size), 0) AS data_saved").
		Where("status = ?", common.StatusCompleted).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// Session returns the counters for jobs completed since startup.
func (s *StatisticsService) Session() (files, saved int64) {
	return s.sessionFiles.Load(), s.sessionSaved.Load()
}

// History returns the most recent records, newest first.
func (s *StatisticsService) History(ctx context.Context, limit int) ([]models.CompressionRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	var records []models.CompressionRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
