package web

import (
	"net/http"

	"github.com/mkanyika/shamba/internal/domain"
)

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var activity domain.Activity
	if err := readJSON(w, r, &activity); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	activity.FarmID = r.PathValue("id")

	user := userFrom(r.Context())
	created, err := s.service.LogActivity(r.Context(), user.ID, activity)
	if err != nil {
		s.serviceError(w, err, "create activity failed")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	user := userFrom(r.Context())
	activities, err := s.service.ListActivities(r.Context(), user.ID, r.PathValue("id"), queryRange(r), limit)
	if err != nil {
		s.serviceError(w, err, "list activities failed")
		return
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	var activity domain.Activity
	if err := readJSON(w, r, &activity); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	activity.ID = r.PathValue("id")

	user := userFrom(r.Context())
	updated, err := s.service.UpdateActivity(r.Context(), user.ID, activity)
	if err != nil {
		s.serviceError(w, err, "update activity failed")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if err := s.service.DeleteActivity(r.Context(), user.ID, r.PathValue("id")); err != nil {
		s.serviceError(w, err, "delete activity failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
