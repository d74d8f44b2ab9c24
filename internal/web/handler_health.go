package web

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/mkanyika/shamba/internal/domain"
	"github.com/mkanyika/shamba/internal/imagestore"
)

// maxImageBytes caps crop photo uploads at 10MB.
const maxImageBytes = 10 << 20

func (s *Server) handleCreateHealthRecord(w http.ResponseWriter, r *http.Request) {
	var record domain.HealthRecord
	if err := readJSON(w, r, &record); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record.FarmID = r.PathValue("id")

	user := userFrom(r.Context())
	created, err := s.service.AddHealthRecord(r.Context(), user.ID, record)
	if err != nil {
		s.serviceError(w, err, "create health record failed")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListHealthRecords(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	user := userFrom(r.Context())
	farmID := r.PathValue("id")

	var records []domain.HealthRecord
	if crop := r.URL.Query().Get("crop"); crop != "" {
		records, err = s.service.ListHealthRecordsByCrop(r.Context(), user.ID, farmID, crop)
	} else {
		records, err = s.service.ListHealthRecords(r.Context(), user.ID, farmID, limit)
	}
	if err != nil {
		s.serviceError(w, err, "list health records failed")
		return
	}
	if records == nil {
		records = []domain.HealthRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

type statusUpdateRequest struct {
	Status           domain.HealthStatus `json:"status"`
	TreatmentApplied string              `json:"treatment_applied"`
}

func (s *Server) handleUpdateHealthStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := userFrom(r.Context())
	updated, err := s.service.UpdateHealthStatus(r.Context(), user.ID, r.PathValue("id"), req.Status, req.TreatmentApplied)
	if err != nil {
		s.serviceError(w, err, "update health status failed")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDiagnose accepts either a JSON body or a multipart form with an
// optional crop photo under the "image" field.
func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	var (
		cropName     string
		symptoms     string
		recordedDate string
		imageData    []byte
		imageMIME    string
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		cropName = r.FormValue("crop_name")
		symptoms = r.FormValue("symptoms")
		recordedDate = r.FormValue("recorded_date")

		if file, header, err := r.FormFile("image"); err == nil {
			defer func() {
				if err := file.Close(); err != nil {
					s.logger.Error("failed to close upload", "error", err)
				}
			}()
			imageData, err = io.ReadAll(io.LimitReader(file, maxImageBytes))
			if err != nil {
				errorJSON(w, http.StatusBadRequest, "failed to read image")
				return
			}
			imageMIME = header.Header.Get("Content-Type")
		}
	} else {
		var req struct {
			CropName     string `json:"crop_name"`
			Symptoms     string `json:"symptoms"`
			RecordedDate string `json:"recorded_date"`
		}
		if err := readJSON(w, r, &req); err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid request body")
			return
		}
		cropName, symptoms, recordedDate = req.CropName, req.Symptoms, req.RecordedDate
	}

	if cropName == "" || symptoms == "" {
		errorJSON(w, http.StatusBadRequest, "crop_name and symptoms required")
		return
	}

	user := userFrom(r.Context())
	record, err := s.service.DiagnoseCrop(r.Context(), user.ID, r.PathValue("id"),
		cropName, symptoms, recordedDate, imageData, imageMIME)
	if err != nil {
		s.serviceError(w, err, "diagnose failed")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	reader, mimeType, err := s.service.GetImage(r.Context(), r.PathValue("key"))
	if err != nil {
		if errors.Is(err, imagestore.ErrNotFound) {
			errorJSON(w, http.StatusNotFound, "not found")
			return
		}
		errorJSON(w, http.StatusBadRequest, "invalid image key")
		return
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.logger.Error("failed to close image reader", "error", err)
		}
	}()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("failed to stream image", "error", err)
	}
}
