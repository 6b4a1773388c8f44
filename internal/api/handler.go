package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexivanou/weather-widget/internal/model"
	"github.com/alexivanou/weather-widget/internal/service"
	"github.com/alexivanou/weather-widget/internal/weather"
	"go.uber.org/zap"
)

// Handler handles lookup requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// WeatherResponse is the body of GET /api/v1/weather
type WeatherResponse struct {
	Status   string               `json:"status"`
	Location string               `json:"location"`
	Message  string               `json:"message,omitempty"`
	Weather  *model.WeatherRecord `json:"weather,omitempty"`
}

// SuggestCities handles GET /api/v1/suggest
func (h *Handler) SuggestCities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	results := h.service.SuggestCities(r.Context(), query)
	if results == nil {
		results = []model.Suggestion{}
	}

	writeJSON(w, h.logger, http.StatusOK, model.SuggestResponse{Results: results})
}

// CurrentWeather handles GET /api/v1/weather
func (h *Handler) CurrentWeather(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("q")

	outcome := h.service.CurrentWeather(r.Context(), location)

	resp := WeatherResponse{
		Status:   outcome.Kind.String(),
		Location: location,
		Message:  outcome.Message(),
	}
	if outcome.Kind == weather.KindSuccess || outcome.Kind == weather.KindNotFound {
		record := outcome.Record
		resp.Weather = &record
	}

	status := weatherStatus(outcome)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("Weather lookup failed",
			zap.String("location", location),
			zap.String("kind", outcome.Kind.String()),
			zap.Error(outcome.Err),
		)
	}

	writeJSON(w, h.logger, status, resp)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func weatherStatus(o weather.Outcome) int {
	switch {
	case o.Kind == weather.KindSuccess:
		return http.StatusOK
	case o.Kind == weather.KindNotFound:
		return http.StatusNotFound
	case errors.Is(o.Err, weather.ErrInvalidLocation):
		return http.StatusBadRequest
	case errors.Is(o.Err, weather.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Error encoding response", zap.Error(err))
	}
}
