package common

import (
	"mime"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID generates a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// CompressedFilename returns the download name suggested for a compressed upload.
func CompressedFilename(original string) string {
	return CompressedFilenamePrefix + original
}

// ContentDisposition builds the attachment header value for a download.
// Quotes and backslashes are escaped and control characters dropped so the
// name cannot break out of the quoted-string.
func ContentDisposition(filename string) string {
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r < 0x20 || r == 0x7f:
			continue
		case r == '"' || r == '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return `attachment; filename="` + b.String() + `"`
}

// NormalizeMIMEType strips parameters and lower-cases a Content-Type value.
func NormalizeMIMEType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

// IsAllowedMIMEType reports whether the upload type is on the allow-list.
func IsAllowedMIMEType(mimeType string) bool {
	return slices.Contains(AllowedMIMETypes, NormalizeMIMEType(mimeType))
}

// MegabytesOf converts a byte limit into whole megabytes for messages,
// rounding up so a partial megabyte is never understated.
func MegabytesOf(size int64) int64 {
	const mb = 1024 * 1024
	return (size + mb - 1) / mb
}
