package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"kleincompress/internal/common"
	compressionDomain "kleincompress/internal/domain/compression"
)

// writeError maps err onto a status code and client message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNoFileUploaded):
		s.jsonError(w, common.MsgNoFileUploaded, http.StatusBadRequest)
	case errors.Is(err, common.ErrUnsupportedType):
		s.jsonError(w, common.MsgUnsupportedType, http.StatusBadRequest)
	case errors.Is(err, common.ErrNotMultipart):
		s.jsonError(w, common.MsgNotMultipart, http.StatusBadRequest)
	case errors.Is(err, common.ErrFileTooLarge):
		msg := fmt.Sprintf(common.MsgFileTooLargeFmt, common.MegabytesOf(s.config.Upload.MaxSizeBytes))
		s.jsonError(w, msg, http.StatusRequestEntityTooLarge)
	case errors.Is(err, common.ErrPoolOverloaded):
		s.jsonError(w, common.MsgServerBusy, http.StatusServiceUnavailable)
	default:
		s.jsonError(w, common.MsgProcessingFailed, http.StatusInternalServerError)
	}
}

func setDownloadHeaders(h http.Header, id, filename, contentType string) {
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", common.ContentDisposition(filename))
	h.Set("X-Request-ID", id)
}

// writeBuffered sends a fully built result in one write.
func (s *Server) writeBuffered(w http.ResponseWriter, result *compressionDomain.Result) {
	setDownloadHeaders(w.Header(), result.ID, result.Filename, result.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		s.logger.Warn("Failed to write response", "request_id", result.ID, "error", err)
	}
}

// streamWriter commits the download headers and status on the first
// write, so failures before any output can still be sent as JSON.
type streamWriter struct {
	w           http.ResponseWriter
	id          string
	filename    string
	contentType string
	committed   bool
}

func newStreamWriter(w http.ResponseWriter, file compressionDomain.UploadedFile) *streamWriter {
	kind := file.Kind()
	return &streamWriter{
		w:           w,
		id:          file.ID,
		filename:    common.CompressedFilename(file.Name),
		contentType: kind.ContentType(),
	}
}

func (sw *streamWriter) commit() {
	if sw.committed {
		return
	}
	sw.committed = true
	setDownloadHeaders(sw.w.Header(), sw.id, sw.filename, sw.contentType)
	sw.w.WriteHeader(http.StatusOK)
}

func (sw *streamWriter) Write(p []byte) (int, error) {
	sw.commit()
	return sw.w.Write(p)
}
