package web

import (
	"net/http"

	"github.com/mkanyika/shamba/internal/domain"
)

func (s *Server) handleCreateFarm(w http.ResponseWriter, r *http.Request) {
	var farm domain.Farm
	if err := readJSON(w, r, &farm); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := userFrom(r.Context())
	created, err := s.service.CreateFarm(r.Context(), user.ID, farm)
	if err != nil {
		s.serviceError(w, err, "create farm failed")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListFarms(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	farms, err := s.service.ListFarms(r.Context(), user.ID)
	if err != nil {
		s.serviceError(w, err, "list farms failed")
		return
	}
	if farms == nil {
		farms = []domain.Farm{}
	}
	writeJSON(w, http.StatusOK, farms)
}

func (s *Server) handleGetFarm(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	farm, err := s.service.GetFarm(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err, "get farm failed")
		return
	}
	if farm == nil {
		errorJSON(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, farm)
}

func (s *Server) handleUpdateFarm(w http.ResponseWriter, r *http.Request) {
	var farm domain.Farm
	if err := readJSON(w, r, &farm); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	farm.ID = r.PathValue("id")

	user := userFrom(r.Context())
	updated, err := s.service.UpdateFarm(r.Context(), user.ID, farm)
	if err != nil {
		s.serviceError(w, err, "update farm failed")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
