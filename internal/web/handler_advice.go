package web

import (
	"net/http"

	"github.com/mkanyika/shamba/internal/advisor"
)

type chatRequest struct {
	FarmID   string            `json:"farm_id"`
	Messages []advisor.Message `json:"messages"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		errorJSON(w, http.StatusBadRequest, "messages required")
		return
	}

	user := userFrom(r.Context())
	reply, err := s.service.Chat(r.Context(), user.ID, req.FarmID, req.Messages)
	if err != nil {
		s.serviceError(w, err, "chat failed")
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
