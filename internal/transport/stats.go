package transport

import (
	"net/http"
	"strconv"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.services.Statistics.GetStats(r.Context())
	if err != nil {
		s.logger.Error("Failed to load statistics", "error", err)
		s.jsonError(w, "failed to load statistics", http.StatusInternalServerError)
		return
	}
	s.jsonResponse(w, stats, http.StatusOK)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.jsonError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := s.services.Statistics.History(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to load history", "error", err)
		s.jsonError(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	s.jsonResponse(w, HistoryResponse{Records: records, Count: len(records)}, http.StatusOK)
}
