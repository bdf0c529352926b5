package container

import (
	"context"
	"io"
	"log/slog"
	"time"

	"kleincompress/internal/app/concurrency"
	"kleincompress/internal/common"
	compressionDomain "kleincompress/internal/domain/compression"
	preferencesDomain "kleincompress/internal/domain/preferences"
	statisticsDomain "kleincompress/internal/domain/statistics"
	"kleincompress/internal/models"
	"kleincompress/internal/services"
)

// PreferencesRepositoryAdapter adapts services.PreferencesService to preferencesDomain.Repository
type PreferencesRepositoryAdapter struct {
	service *services.PreferencesService
}

func (a *PreferencesRepositoryAdapter) GetPreferences(ctx context.Context) (*preferencesDomain.PreferencesData, error) {
	prefs, err := a.service.GetPreferences(ctx)
	if err != nil {
		return nil, err
	}
	return toDomainPreferences(prefs), nil
}

func (a *PreferencesRepositoryAdapter) UpdatePreferences(ctx context.Context, data map[string]any) (*preferencesDomain.PreferencesData, error) {
	prefs, err := a.service.UpdatePreferences(ctx, data)
	if err != nil {
		return nil, err
	}
	return toDomainPreferences(prefs), nil
}

func toDomainPreferences(prefs *models.PreferencesData) *preferencesDomain.PreferencesData {
	return &preferencesDomain.PreferencesData{
		ZipCompressionLevel: prefs.ZipCompressionLevel,
		PDFObjectStreams:    prefs.PDFObjectStreams,
		PDFXRefStreams:      prefs.PDFXRefStreams,
		PDFValidation:       prefs.PDFValidation,
	}
}

// StatisticsServiceImpl adapts services.StatisticsService to statisticsDomain.Service
type StatisticsServiceImpl struct {
	service *services.StatisticsService
}

func (s *StatisticsServiceImpl) Record(ctx context.Context, record statisticsDomain.Record) error {
	return s.service.Record(ctx, &models.CompressionRecord{
		ID:             record.ID,
		Filename:       record.Filename,
		Kind:           record.Kind,
		MIMEType:       record.MIMEType,
		OriginalSize:   record.OriginalSize,
		CompressedSize: record.CompressedSize,
		Status:         record.Status,
		Error:          record.Error,
		DurationMillis: record.DurationMillis,
		CreatedAt:      record.CreatedAt,
	})
}

func (s *StatisticsServiceImpl) GetStats(ctx context.Context) (*statisticsDomain.AppStats, error) {
	totals, err := s.service.Totals(ctx)
	if err != nil {
		return nil, err
	}
	sessionFiles, sessionSaved := s.service.Session()

	return &statisticsDomain.AppStats{
		TotalFilesCompressed:   totals.FilesCompressed,
		TotalDataSaved:         totals.DataSaved,
		SessionFilesCompressed: sessionFiles,
		SessionDataSaved:       sessionSaved,
	}, nil
}

func (s *StatisticsServiceImpl) History(ctx context.Context, limit int) ([]statisticsDomain.Record, error) {
	records, err := s.service.History(ctx, limit)
	if err != nil {
		return nil, err
	}

	history := make([]statisticsDomain.Record, len(records))
	for i, r := range records {
		history[i] = statisticsDomain.Record{
			ID:             r.ID,
			Filename:       r.Filename,
			Kind:           r.Kind,
			MIMEType:       r.MIMEType,
			OriginalSize:   r.OriginalSize,
			CompressedSize: r.CompressedSize,
			Status:         r.Status,
			Error:          r.Error,
			DurationMillis: r.DurationMillis,
			CreatedAt:      r.CreatedAt,
		}
	}
	return history, nil
}

// CompressionServiceImpl implements the compression domain service
type CompressionServiceImpl struct {
	compressor compressionDomain.Compressor
	pool       *concurrency.WorkerPool
	prefsRepo  preferencesDomain.Repository
	stats      statisticsDomain.Service
	logger     *slog.Logger
}

// CompressPDF re-serializes a PDF upload on the worker pool.
func (s *CompressionServiceImpl) CompressPDF(ctx context.Context, file compressionDomain.UploadedFile) (*compressionDomain.Result, error) {
	start := time.Now()
	options := s.resolveOptions(ctx)

	var out []byte
	err := s.pool.Run(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.compressor.CompressPDF(ctx, file.Data, options)
		return err
	})

	result := s.newResult(file, compressionDomain.KindPDF)
	if err == nil {
		result.Data = out
		result.CompressedSize = int64(len(out))
	}
	s.record(ctx, file, result, start, err)

	if err != nil {
		return nil, common.NewCompressionError("pdf", file.Name, err)
	}
	return result, nil
}

// WriteArchive streams a new archive wrapping the upload into w. The
// returned result carries the number of bytes written even on error.
func (s *CompressionServiceImpl) WriteArchive(ctx context.Context, file compressionDomain.UploadedFile, w io.Writer) (*compressionDomain.Result, error) {
	start := time.Now()
	options := s.resolveOptions(ctx)

	result := s.newResult(file, compressionDomain.KindArchive)
	err := s.pool.Run(ctx, func(ctx context.Context) error {
		n, err := s.compressor.WriteArchive(ctx, w, file.Name, file.Data, options.ZipLevel)
		result.CompressedSize = n
		return err
	})
	s.record(ctx, file, result, start, err)

	if err != nil {
		return result, common.NewCompressionError("archive", file.Name, err)
	}
	return result, nil
}

func (s *CompressionServiceImpl) newResult(file compressionDomain.UploadedFile, kind compressionDomain.Kind) *compressionDomain.Result {
	id := file.ID
	if id == "" {
		id = common.GenerateUUID()
	}
	return &compressionDomain.Result{
		ID:           id,
		Kind:         kind,
		Filename:     common.CompressedFilename(file.Name),
		ContentType:  kind.ContentType(),
		OriginalSize: file.Size(),
	}
}

// resolveOptions loads the stored preferences, falling back to defaults
func (s *CompressionServiceImpl) resolveOptions(ctx context.Context) compressionDomain.CompressionOptions {
	prefs, err := s.prefsRepo.GetPreferences(ctx)
	if err != nil || prefs == nil {
		s.logger.Warn("Failed to load preferences, using default compression options", "error", err)
		return compressionDomain.DefaultCompressionOptions()
	}

	return compressionDomain.CompressionOptions{
		ZipLevel:         prefs.ZipCompressionLevel,
		PDFObjectStreams: prefs.PDFObjectStreams,
		PDFXRefStreams:   prefs.PDFXRefStreams,
		PDFValidation:    prefs.PDFValidation,
	}
}

// record logs the finished job and stores its statistics record. The
// record is written even when the request context was cancelled.
func (s *CompressionServiceImpl) record(ctx context.Context, file compressionDomain.UploadedFile, result *compressionDomain.Result, start time.Time, jobErr error) {
	duration := time.Since(start)

	record := statisticsDomain.Record{
		ID:             result.ID,
		Filename:       file.Name,
		Kind:           result.Kind.String(),
		MIMEType:       file.MIMEType,
		OriginalSize:   result.OriginalSize,
		CompressedSize: result.CompressedSize,
		Status:         common.StatusCompleted,
		DurationMillis: duration.Milliseconds(),
	}

	if jobErr != nil {
		record.Status = common.StatusError
		record.Error = jobErr.Error()
		s.logger.Error("Compression failed",
			"request_id", result.ID,
			"filename", file.Name,
			"kind", result.Kind.String(),
			"error", jobErr)
	} else {
		s.logger.Info("Compression completed",
			"request_id", result.ID,
			"filename", file.Name,
			"kind", result.Kind.String(),
			"original_size", result.OriginalSize,
			"compressed_size", result.CompressedSize,
			"compression_ratio", result.CompressionRatio(),
			"duration", duration)
	}

	if err := s.stats.Record(context.WithoutCancel(ctx), record); err != nil {
		s.logger.Warn("Failed to store compression record", "request_id", result.ID, "error", err)
	}
}
