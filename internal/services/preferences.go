package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"kleincompress/internal/common"
	"kleincompress/internal/compression"
	"kleincompress/internal/models"
)

// PreferencesService handles compression preferences operations
type PreferencesService struct {
	db *gorm.DB
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(db *gorm.DB) *PreferencesService {
	return &PreferencesService{db: db}
}

// GetPreferences gets the current compression preferences
func (s *PreferencesService) GetPreferences(ctx context.Context) (*models.PreferencesData, error) {
	prefs, err := models.GetOrCreatePreferences(s.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	prefsData := prefs.GetPreferences()
	return &prefsData, nil
}

// UpdatePreferences applies the known keys of data and returns the stored
// result. Values of the wrong type or out of range are rejected with
// common.ErrInvalidPreference and nothing is saved.
func (s *PreferencesService) UpdatePreferences(ctx context.Context, data map[string]any) (*models.PreferencesData, error) {
	db := s.db.WithContext(ctx)

	prefs, err := models.GetOrCreatePreferences(db)
	if err != nil {
		return nil, err
	}

	currentPrefs := prefs.GetPreferences()

	if val, ok := data["zip_compression_level"]; ok {
		level, ok := val.(float64)
		if !ok || level != math.Trunc(level) || level < 0 || level > 9 {
			return nil, fmt.Errorf("%w: zip_compression_level must be an integer between 0 and 9", common.ErrInvalidPreference)
		}
		currentPrefs.ZipCompressionLevel = int(level)
	}

	if val, ok := data["pdf_object_streams"]; ok {
		enabled, ok := val.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: pdf_object_streams must be a boolean", common.ErrInvalidPreference)
		}
		currentPrefs.PDFObjectStreams = enabled
	}

	if val, ok := data["pdf_xref_streams"]; ok {
		enabled, ok := val.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: pdf_xref_streams must be a boolean", common.ErrInvalidPreference)
		}
		currentPrefs.PDFXRefStreams = enabled
	}

	if val, ok := data["pdf_validation"]; ok {
		mode, ok := val.(string)
		if !ok || !compression.ValidValidationMode(mode) {
			return nil, fmt.Errorf("%w: pdf_validation must be %q or %q", common.ErrInvalidPreference,
				compression.ValidationRelaxed, compression.ValidationStrict)
		}
		currentPrefs.PDFValidation = strings.ToLower(mode)
	}

	if err := prefs.SetPreferences(currentPrefs); err != nil {
		return nil, err
	}
	if err := db.Save(prefs).Error; err != nil {
		return nil, err
	}

	return &currentPrefs, nil
}
