package web

import (
	"net/http"

	"github.com/JonMunkholm/ArtworkTable/internal/core"
)

// SubmissionsResponse lists recent submissions, newest first.
type SubmissionsResponse struct {
	Submissions []core.Submission `json:"submissions"`
	Count       int               `json:"count"`
}

// handleSubmissions returns recent submissions from the submission store.
// Query param: limit (default and max 50).
func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	if !s.service.HasHistory() {
		s.respondError(w, r, core.ErrNoHistory, http.StatusNotFound)
		return
	}

	limit := parseIntParam(r, "limit", core.DefaultHistoryLimit)
	subs, err := s.service.RecentSubmissions(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, SubmissionsResponse{Submissions: subs, Count: len(subs)})
}
