package transport

import (
	"net/http"

	"kleincompress/internal/common"
	compressionDomain "kleincompress/internal/domain/compression"
)

func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.jsonError(w, common.MsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	file, err := s.receiveUpload(w, r)
	if err != nil {
		s.logger.Info("Upload rejected", "remote_addr", r.RemoteAddr, "error", err)
		s.writeError(w, err)
		return
	}
	file.ID = common.GenerateUUID()

	switch file.Kind() {
	case compressionDomain.KindPDF:
		s.compressPDF(w, r, *file)
	case compressionDomain.KindArchive:
		s.compressArchive(w, r, *file)
	default:
		s.writeError(w, common.ErrUnsupportedType)
	}
}

func (s *Server) compressPDF(w http.ResponseWriter, r *http.Request, file compressionDomain.UploadedFile) {
	result, err := s.services.Compression.CompressPDF(r.Context(), file)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeBuffered(w, result)
}

// compressArchive streams the archive into the response. Once bytes have
// been sent a failure can no longer be reported, so the connection is
// aborted instead of ending the response cleanly.
func (s *Server) compressArchive(w http.ResponseWriter, r *http.Request, file compressionDomain.UploadedFile) {
	sw := newStreamWriter(w, file)

	_, err := s.services.Compression.WriteArchive(r.Context(), file, sw)
	if err == nil {
		sw.commit()
		return
	}
	if !sw.committed {
		s.writeError(w, err)
		return
	}

	s.logger.Error("Archive stream failed after response was committed",
		"request_id", file.ID,
		"filename", file.Name,
		"error", err)
	panic(http.ErrAbortHandler)
}
