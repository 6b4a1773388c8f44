package api

import (
	"net/http"

	"github.com/alexivanou/weather-widget/internal/service"
	"github.com/alexivanou/weather-widget/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, sessions *SessionStore, statsCollector *stats.Collector, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := NewHandler(service, logger)
	sessionHandler := NewSessionHandler(sessions, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()
	router.Use(RequestID, CORS, AccessLog(logger))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/suggest", handler.SuggestCities).Methods("GET")
	v1.HandleFunc("/weather", handler.CurrentWeather).Methods("GET")
	v1.HandleFunc("/sessions", sessionHandler.CreateSession).Methods("POST")
	v1.HandleFunc("/sessions/{id}", sessionHandler.GetSession).Methods("GET")
	v1.HandleFunc("/sessions/{id}", sessionHandler.DeleteSession).Methods("DELETE")
	v1.HandleFunc("/sessions/{id}/events", sessionHandler.PostEvent).Methods("POST")
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	// CORS preflight; the middleware answers it
	v1.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	return router
}
