package service

import (
	"context"

	"github.com/alexivanou/weather-widget/internal/model"
	"github.com/alexivanou/weather-widget/internal/weather"
)

// SuggestCities returns autocomplete matches for a partial place name.
// It never fails; an empty slice covers every error case.
func (s *Service) SuggestCities(ctx context.Context, fragment string) []model.Suggestion {
	if s.stats != nil {
		defer s.stats.TrackSuggest()()
	}

	results := s.geocoder.Suggest(ctx, fragment)
	if results == nil {
		results = []model.Suggestion{}
	}
	// A superseded lookup says nothing about the provider
	if s.stats != nil && ctx.Err() == nil {
		s.stats.RecordSuggest(len(results))
	}
	return results
}

// CurrentWeather looks up current conditions for a location
func (s *Service) CurrentWeather(ctx context.Context, location string) weather.Outcome {
	if s.stats != nil {
		defer s.stats.TrackWeather()()
	}

	outcome := s.fetcher.Fetch(ctx, location)
	if s.stats != nil && ctx.Err() == nil {
		s.stats.RecordWeather(outcome.Kind.String())
	}
	return outcome
}
