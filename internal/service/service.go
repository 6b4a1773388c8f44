package service

import (
	"github.com/alexivanou/weather-widget/internal/stats"
)

// Service provides the lookups behind the widget
type Service struct {
	geocoder Suggester
	fetcher  WeatherFetcher
	stats    *stats.Collector
}

// NewService creates a new service instance. collector may be nil.
func NewService(
	geocoder Suggester,
	fetcher WeatherFetcher,
	collector *stats.Collector,
) *Service {
	return &Service{
		geocoder: geocoder,
		fetcher:  fetcher,
		stats:    collector,
	}
}
