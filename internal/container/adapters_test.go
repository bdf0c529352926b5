package container

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kleincompress/internal/common"
	"kleincompress/internal/config"
	"kleincompress/internal/database"
	compressionDomain "kleincompress/internal/domain/compression"
	preferencesDomain "kleincompress/internal/domain/preferences"
	"kleincompress/internal/testutil"
)

func setupTestContainer(t *testing.T) *Container {
	t.Helper()
	cfg := config.New()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg.Compression.MaxWorkers = 2

	db, err := database.Initialize(database.MemoryPath, cfg.Logger)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	c, err := New(cfg, db)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNew(t *testing.T) {
	c := setupTestContainer(t)

	assert.NotNil(t, c.GetCompressionService())
	assert.NotNil(t, c.GetStatisticsService())
	assert.NotNil(t, c.GetPreferencesRepository())
	assert.Equal(t, 2, c.GetWorkerPool().Stats().MaxWorkers)
}

func TestCompressionService_PDF(t *testing.T) {
	c := setupTestContainer(t)
	ctx := context.Background()

	file := compressionDomain.UploadedFile{
		ID:       "job-1",
		Name:     "report.pdf",
		MIMEType: common.MIMETypePDF,
		Data:     testutil.MinimalPDF("hello"),
	}
	result, err := c.GetCompressionService().CompressPDF(ctx, file)
	require.NoError(t, err)

	assert.Equal(t, "job-1", result.ID)
	assert.Equal(t, "compressed_report.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, int64(len(result.Data)), result.CompressedSize)
	assert.Equal(t, file.Size(), result.OriginalSize)

	history, err := c.GetStatisticsService().History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "job-1", history[0].ID)
	assert.Equal(t, common.StatusCompleted, history[0].Status)
	assert.Equal(t, "pdf", history[0].Kind)
}

func TestCompressionService_PDFFailureIsRecorded(t *testing.T) {
	c := setupTestContainer(t)
	ctx := context.Background()

	_, err := c.GetCompressionService().CompressPDF(ctx, compressionDomain.UploadedFile{
		Name:     "broken.pdf",
		MIMEType: common.MIMETypePDF,
		Data:     []byte("not a pdf"),
	})
	var compressionErr *common.CompressionError
	require.ErrorAs(t, err, &compressionErr)
	assert.Equal(t, "broken.pdf", compressionErr.Filename)

	history, err := c.GetStatisticsService().History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, common.StatusError, history[0].Status)
	assert.NotEmpty(t, history[0].Error)
	assert.NotEmpty(t, history[0].ID)

	stats, err := c.GetStatisticsService().GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalFilesCompressed)
}

func TestCompressionService_Archive(t *testing.T) {
	c := setupTestContainer(t)
	ctx := context.Background()
	data := bytes.Repeat([]byte("abc"), 10_000)

	var buf bytes.Buffer
	result, err := c.GetCompressionService().WriteArchive(ctx, compressionDomain.UploadedFile{
		Name:     "a.zip",
		MIMEType: common.MIMETypeZip,
		Data:     data,
	}, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), result.CompressedSize)
	assert.Equal(t, "compressed_a.zip", result.Filename)
	assert.Nil(t, result.Data)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "a.zip", zr.File[0].Name)

	stats, err := c.GetStatisticsService().GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalFilesCompressed)
	assert.Equal(t, int64(1), stats.SessionFilesCompressed)
	assert.Equal(t, int64(len(data))-int64(buf.Len()), stats.TotalDataSaved)
}

func TestCompressionService_UsesStoredZipLevel(t *testing.T) {
	c := setupTestContainer(t)
	ctx := context.Background()
	data := bytes.Repeat([]byte("kleincompress "), 5_000)
	file := compressionDomain.UploadedFile{Name: "a.txt", MIMEType: common.MIMETypeZip, Data: data}

	var level9 bytes.Buffer
	_, err := c.GetCompressionService().WriteArchive(ctx, file, &level9)
	require.NoError(t, err)

	_, err = c.GetPreferencesRepository().UpdatePreferences(ctx, map[string]any{"zip_compression_level": float64(0)})
	require.NoError(t, err)

	var level0 bytes.Buffer
	_, err = c.GetCompressionService().WriteArchive(ctx, file, &level0)
	require.NoError(t, err)

	assert.Greater(t, level0.Len(), level9.Len())
}

type failingPrefsRepo struct{}

func (failingPrefsRepo) GetPreferences(context.Context) (*preferencesDomain.PreferencesData, error) {
	return nil, errors.New("database is locked")
}

func (failingPrefsRepo) UpdatePreferences(context.Context, map[string]any) (*preferencesDomain.PreferencesData, error) {
	return nil, errors.New("database is locked")
}

func TestCompressionService_PreferencesFallback(t *testing.T) {
	c := setupTestContainer(t)
	service := c.GetCompressionService().(*CompressionServiceImpl)
	service.prefsRepo = failingPrefsRepo{}

	assert.Equal(t, compressionDomain.DefaultCompressionOptions(), service.resolveOptions(context.Background()))

	result, err := service.CompressPDF(context.Background(), compressionDomain.UploadedFile{
		Name:     "a.pdf",
		MIMEType: common.MIMETypePDF,
		Data:     testutil.MinimalPDF("fallback"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Data)
}

func TestCompressionService_CancelledContext(t *testing.T) {
	c := setupTestContainer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetCompressionService().CompressPDF(ctx, compressionDomain.UploadedFile{
		Name:     "a.pdf",
		MIMEType: common.MIMETypePDF,
		Data:     testutil.MinimalPDF("x"),
	})
	assert.ErrorIs(t, err, context.Canceled)

	history, err := c.GetStatisticsService().History(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, common.StatusError, history[0].Status)
}
