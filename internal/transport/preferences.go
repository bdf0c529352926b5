package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"kleincompress/internal/common"
)

const maxPreferencesBody = 64 << 10

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.services.Preferences.GetPreferences(r.Context())
	if err != nil {
		s.logger.Error("Failed to load preferences", "error", err)
		s.jsonError(w, "failed to load preferences", http.StatusInternalServerError)
		return
	}
	s.jsonResponse(w, prefs, http.StatusOK)
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPreferencesBody)).Decode(&data); err != nil {
		s.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	prefs, err := s.services.Preferences.UpdatePreferences(r.Context(), data)
	if err != nil {
		if errors.Is(err, common.ErrInvalidPreference) {
			s.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error("Failed to update preferences", "error", err)
		s.jsonError(w, "failed to update preferences", http.StatusInternalServerError)
		return
	}

	s.logger.Info("Preferences updated", "preferences", prefs)
	s.jsonResponse(w, prefs, http.StatusOK)
}
