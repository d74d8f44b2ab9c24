package web

import (
	"net/http"
	"strconv"
)

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	if s.weather == nil {
		errorJSON(w, http.StatusServiceUnavailable, "weather not configured")
		return
	}

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		errorJSON(w, http.StatusBadRequest, "lat and lon query parameters required")
		return
	}

	report, err := s.weather.Forecast(r.Context(), lat, lon)
	if err != nil {
		s.logger.Error("weather fetch failed", "error", err)
		errorJSON(w, http.StatusBadGateway, "failed to fetch weather")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
