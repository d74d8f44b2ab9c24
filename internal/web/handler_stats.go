package web

import (
	"net/http"
)

func (s *Server) handleFarmStats(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	snapshot, err := s.service.FarmStats(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err, "farm stats failed")
		return
	}
	if snapshot == nil {
		errorJSON(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleActivityStats(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	stats, err := s.service.ActivityStats(r.Context(), user.ID, r.PathValue("id"), queryRange(r))
	if err != nil {
		s.serviceError(w, err, "activity stats failed")
		return
	}
	if stats == nil {
		errorJSON(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleFinancialSummary(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	summary, err := s.service.FinancialSummary(r.Context(), user.ID, r.PathValue("id"), queryRange(r))
	if err != nil {
		s.serviceError(w, err, "financial summary failed")
		return
	}
	if summary == nil {
		errorJSON(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHealthStats(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	stats, err := s.service.HealthStats(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err, "health stats failed")
		return
	}
	if stats == nil {
		errorJSON(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
