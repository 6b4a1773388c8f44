package weather

import (
	"errors"
	"fmt"

	"github.com/alexivanou/weather-widget/internal/model"
)

// Kind classifies a finished weather lookup
type Kind int

const (
	KindSuccess Kind = iota
	KindNotFound
	KindInvalidAPIKey
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindNotFound:
		return "not_found"
	case KindInvalidAPIKey:
		return "invalid_api_key"
	default:
		return "error"
	}
}

// Outcome is the result of a single Fetch
type Outcome struct {
	Kind     Kind
	Location string
	Record   model.WeatherRecord
	Err      error
}

// Message returns the text shown to the user, or "" on success
func (o Outcome) Message() string {
	if o.Kind == KindSuccess {
		return ""
	}

	var perr *ProviderError
	switch {
	case errors.Is(o.Err, ErrInvalidLocation):
		return "Please enter a valid location"
	case errors.Is(o.Err, ErrMissingAPIKey):
		return "API key is missing. Please add WEATHER_API_KEY to your .env file"
	case errors.Is(o.Err, ErrNotFound):
		return fmt.Sprintf("Location \"%s\" not found. Please try another location.", o.Location)
	case errors.Is(o.Err, ErrInvalidAPIKey):
		return "Invalid API key. Please check your configuration."
	case errors.Is(o.Err, ErrTransport):
		return "Network error. Please check your internet connection."
	case errors.As(o.Err, &perr):
		if perr.Message != "" {
			return perr.Message
		}
	}
	return fallbackProviderMessage
}

func success(location string, record model.WeatherRecord) Outcome {
	return Outcome{Kind: KindSuccess, Location: location, Record: record}
}

func failure(kind Kind, location string, err error) Outcome {
	o := Outcome{Kind: kind, Location: location, Err: err}
	if kind == KindNotFound {
		o.Record = model.NotFoundRecord()
	}
	return o
}
