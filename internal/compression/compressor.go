package compression

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	domain "kleincompress/internal/domain/compression"
)

func init() {
	// pdfcpu otherwise creates a config directory under the user's home.
	api.DisableConfigDir()
}

// Compressor handles PDF and archive compression operations
type Compressor struct {
	logger *slog.Logger
}

// NewCompressor creates a new compressor instance
func NewCompressor(logger *slog.Logger) *Compressor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compressor{logger: logger}
}

// CompressPDF parses data and writes it back using object streams.
// Nothing is returned unless the whole document was written.
func (c *Compressor) CompressPDF(ctx context.Context, data []byte, options domain.CompressionOptions) (out []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	// pdfcpu panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("pdf optimize panicked: %v", r)
		}
	}()

	var buf bytes.Buffer
	buf.Grow(len(data))
	if err := api.Optimize(bytes.NewReader(data), &buf, pdfConfiguration(options)); err != nil {
		return nil, fmt.Errorf("pdf optimize: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.Debug("PDF optimized",
		"original_size", len(data),
		"compressed_size", buf.Len(),
		"object_streams", options.PDFObjectStreams)

	return buf.Bytes(), nil
}
