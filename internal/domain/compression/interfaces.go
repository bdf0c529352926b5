package compression

import (
	"context"
	"io"
)

// Compressor wraps the external PDF and archive libraries.
type Compressor interface {
	CompressPDF(ctx context.Context, data []byte, options CompressionOptions) ([]byte, error)
	WriteArchive(ctx context.Context, w io.Writer, name string, data []byte, level int) (int64, error)
}

// Service runs uploads through the transforms on the worker pool.
type Service interface {
	CompressPDF(ctx context.Context, file UploadedFile) (*Result, error)
	WriteArchive(ctx context.Context, file UploadedFile, w io.Writer) (*Result, error)
}
