package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kleincompress/internal/common"
	"kleincompress/internal/models"
)

func TestRecord_AssignsIDAndCountsSession(t *testing.T) {
	service := NewStatisticsService(setupTestDB(t))
	ctx := context.Background()

	record := &models.CompressionRecord{
		Filename:       "a.pdf",
		Kind:           "pdf",
		OriginalSize:   1000,
		CompressedSize: 600,
		Status:         common.StatusCompleted,
	}
	require.NoError(t, service.Record(ctx, record))
	assert.NotEmpty(t, record.ID)

	require.NoError(t, service.Record(ctx, &models.CompressionRecord{
		Filename: "broken.pdf",
		Kind:     "pdf",
		Status:   common.StatusError,
		Error:    "pdf optimize: bad xref",
	}))

	files, saved := service.Session()
	assert.Equal(t, int64(1), files)
	assert.Equal(t, int64(400), saved)
}

func TestTotals_OnlyCompletedJobs(t *testing.T) {
	service := NewStatisticsService(setupTestDB(t))
	ctx := context.Background()

	totals, err := service.Totals(ctx)
	require.NoError(t, err)
	assert.Zero(t, totals.FilesCompressed)
	assert.Zero(t, totals.DataSaved)

	for _, r := range []models.CompressionRecord{
		{Filename: "a.pdf", OriginalSize: 1000, CompressedSize: 700, Status: common.StatusCompleted},
		{Filename: "b.zip", OriginalSize: 500, CompressedSize: 520, Status: common.StatusCompleted},
		{Filename: "c.pdf", OriginalSize: 900, Status: common.StatusError},
	} {
		require.NoError(t, service.Record(ctx, &r))
	}

	totals, err = service.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.FilesCompressed)
	assert.Equal(t, int64(280), totals.DataSaved)
}

func TestHistory_NewestFirstAndLimited(t *testing.T) {
	service := NewStatisticsService(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, service.Record(ctx, &models.CompressionRecord{
			Filename:  fmt.Sprintf("file-%d.pdf", i),
			Status:    common.StatusCompleted,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	records, err := service.History(ctx, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "file-4.pdf", records[0].Filename)
	assert.Equal(t, "file-2.pdf", records[2].Filename)

	all, err := service.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
