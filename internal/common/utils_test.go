package common

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUID(t *testing.T) {
	uuid1 := GenerateUUID()
	uuid2 := GenerateUUID()

	require.NotEmpty(t, uuid1)
	require.NotEmpty(t, uuid2)
	assert.NotEqual(t, uuid1, uuid2)

	_, err := uuid.Parse(uuid1)
	assert.NoError(t, err)
	_, err = uuid.Parse(uuid2)
	assert.NoError(t, err)
}

func TestCompressedFilename(t *testing.T) {
	assert.Equal(t, "compressed_a.zip", CompressedFilename("a.zip"))
	assert.Equal(t, "compressed_laporan akhir.pdf", CompressedFilename("laporan akhir.pdf"))
}

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{
			name:     "plain name",
			filename: "compressed_a.zip",
			expected: `attachment; filename="compressed_a.zip"`,
		},
		{
			name:     "quote is escaped",
			filename: `compressed_say "hi".pdf`,
			expected: `attachment; filename="compressed_say \"hi\".pdf"`,
		},
		{
			name:     "backslash is escaped",
			filename: `compressed_a\b.pdf`,
			expected: `attachment; filename="compressed_a\\b.pdf"`,
		},
		{
			name:     "control characters dropped",
			filename: "compressed_a\r\nb.pdf",
			expected: `attachment; filename="compressed_ab.pdf"`,
		},
		{
			name:     "unicode kept",
			filename: "compressed_dokumen-ñ.pdf",
			expected: `attachment; filename="compressed_dokumen-ñ.pdf"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContentDisposition(tt.filename))
		})
	}
}

func TestIsAllowedMIMEType(t *testing.T) {
	tests := []struct {
		mimeType string
		expected bool
	}{
		{"application/pdf", true},
		{"application/zip", true},
		{"application/x-zip-compressed", true},
		{"Application/PDF", true},
		{"application/pdf; name=a.pdf", true},
		{"application/octet-stream", false},
		{"image/png", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAllowedMIMEType(tt.mimeType))
		})
	}
}

func TestMegabytesOf(t *testing.T) {
	assert.Equal(t, int64(10), MegabytesOf(DefaultMaxUploadSize))
	assert.Equal(t, int64(1), MegabytesOf(1024))
	assert.Equal(t, int64(6), MegabytesOf(5*1024*1024+512*1024))
	assert.Equal(t, int64(0), MegabytesOf(0))
}
