package preferences

import "context"

type Repository interface {
	GetPreferences(ctx context.Context) (*PreferencesData, error)
	UpdatePreferences(ctx context.Context, data map[string]any) (*PreferencesData, error)
}

type PreferencesData struct {
	ZipCompressionLevel int    `json:"zip_compression_level"`
	PDFObjectStreams    bool   `json:"pdf_object_streams"`
	PDFXRefStreams      bool   `json:"pdf_xref_streams"`
	PDFValidation       string `json:"pdf_validation"`
}
