package models

import "time"

// CompressionRecord is one finished compression job
type CompressionRecord struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Filename       string    `gorm:"size:255" json:"filename"`
	Kind           string    `gorm:"size:16;index" json:"kind"`
	MIMEType       string    `gorm:"size:64" json:"mime_type"`
	OriginalSize   int64     `json:"original_size"`
	CompressedSize int64     `json:"compressed_size"`
	Status         string    `gorm:"size:16;index" json:"status"`
	Error          string    `gorm:"type:text" json:"error,omitempty"`
	DurationMillis int64     `json:"duration_ms"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

// All returns every model managed by the database layer.
func All() []any {
	return []any{&Preferences{}, &CompressionRecord{}}
}
