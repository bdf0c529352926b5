package compression

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"context"
	"fmt"
	"io"
	"time"
)

const defaultEntryName = "file"

// WriteArchive streams a new ZIP to w holding data as a single entry called
// name, deflated at level. It returns the number of bytes written to w. The
// central directory is only written when every entry byte made it through,
// so a failed call leaves w with an unreadable archive.
func (c *Compressor) WriteArchive(ctx context.Context, w io.Writer, name string, data []byte, level int) (int64, error) {
	if level < flate.NoCompression || level > flate.BestCompression {
		return 0, ErrInvalidZipLevel
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if name == "" {
		name = defaultEntryName
	}

	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}
	entry, err := zw.CreateHeader(header)
	if err != nil {
		return cw.n, fmt.Errorf("create zip entry: %w", err)
	}

	if _, err := io.Copy(entry, &contextReader{ctx: ctx, r: bytes.NewReader(data)}); err != nil {
		return cw.n, fmt.Errorf("write zip entry: %w", err)
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("finalize zip: %w", err)
	}

	c.logger.Debug("Archive written",
		"entry", name,
		"level", level,
		"original_size", len(data),
		"compressed_size", cw.n)

	return cw.n, nil
}
