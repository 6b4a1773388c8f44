package service

import (
	"context"

	"github.com/alexivanou/weather-widget/internal/model"
	"github.com/alexivanou/weather-widget/internal/weather"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	SuggestCities(ctx context.Context, fragment string) []model.Suggestion
	CurrentWeather(ctx context.Context, location string) weather.Outcome
}

// Suggester is implemented by geocoding.Client
type Suggester interface {
	Suggest(ctx context.Context, fragment string) []model.Suggestion
}

// WeatherFetcher is implemented by weather.Client
type WeatherFetcher interface {
	Fetch(ctx context.Context, location string) weather.Outcome
}
