package models

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"kleincompress/internal/common"
)

// Preferences represents the server-wide compression preferences row
type Preferences struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PreferencesJSON string    `gorm:"type:text" json:"preferences_json"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PreferencesData represents the structured preferences data
type PreferencesData struct {
	ZipCompressionLevel int    `json:"zip_compression_level"`
	PDFObjectStreams    bool   `json:"pdf_object_streams"`
	PDFXRefStreams      bool   `json:"pdf_xref_streams"`
	PDFValidation       string `json:"pdf_validation"`
}

// DefaultPreferences returns default preference values
func DefaultPreferences() PreferencesData {
	return PreferencesData{
		ZipCompressionLevel: common.DefaultZipLevel,
		PDFObjectStreams:    true,
		PDFXRefStreams:      true,
		PDFValidation:       "relaxed",
	}
}

// GetPreferences parses and returns the preferences data
func (p *Preferences) GetPreferences() PreferencesData {
	if p.PreferencesJSON == "" {
		return DefaultPreferences()
	}

	prefs := DefaultPreferences()
	if err := json.Unmarshal([]byte(p.PreferencesJSON), &prefs); err != nil {
		return DefaultPreferences()
	}

	return prefs
}

// SetPreferences sets the preferences data
func (p *Preferences) SetPreferences(prefs PreferencesData) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	p.PreferencesJSON = string(data)
	return nil
}

// GetOrCreatePreferences gets or creates the global preferences instance
func GetOrCreatePreferences(db *gorm.DB) (*Preferences, error) {
	var prefs Preferences

	result := db.First(&prefs, 1)
	if result.Error == nil {
		return &prefs, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	prefs = Preferences{ID: 1}
	if err := prefs.SetPreferences(DefaultPreferences()); err != nil {
		return nil, err
	}
	if err := db.Create(&prefs).Error; err != nil {
		return nil, err
	}

	return &prefs, nil
}
