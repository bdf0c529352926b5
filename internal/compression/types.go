package compression

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	domain "kleincompress/internal/domain/compression"
)

var (
	ErrEmptyDocument   = errors.New("empty document")
	ErrInvalidZipLevel = errors.New("zip compression level must be between 0 and 9")
)

// PDF validation modes understood by the PDF transform.
const (
	ValidationRelaxed = "relaxed"
	ValidationStrict  = "strict"
)

// ValidValidationMode reports whether mode names a supported validation mode.
func ValidValidationMode(mode string) bool {
	switch strings.ToLower(mode) {
	case ValidationRelaxed, ValidationStrict:
		return true
	}
	return false
}

// pdfConfiguration builds the pdfcpu configuration for an optimize run.
func pdfConfiguration(options domain.CompressionOptions) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.WriteObjectStream = options.PDFObjectStreams
	conf.WriteXRefStream = options.PDFXRefStreams
	if strings.ToLower(options.PDFValidation) == ValidationStrict {
		conf.ValidationMode = model.ValidationStrict
	} else {
		conf.ValidationMode = model.ValidationRelaxed
	}
	return conf
}

// countingWriter tracks how many bytes reached the underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// contextReader stops a copy once the request context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
