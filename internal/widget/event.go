package widget

import (
	"github.com/alexivanou/weather-widget/internal/model"
	"github.com/alexivanou/weather-widget/internal/weather"
)

// Key names a keyboard key the search input reacts to
type Key string

const (
	KeyEnter     Key = "Enter"
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEscape    Key = "Escape"
)

// Event is an input to Reduce
type Event interface {
	isEvent()
}

// Mounted starts the initial lookup for the default location
type Mounted struct{ Location string }

// InputChanged carries the new content of the search input
type InputChanged struct{ Text string }

// KeyPressed is a key press inside the search input
type KeyPressed struct{ Key Key }

// Submitted is the explicit search trigger
type Submitted struct{}

// SuggestionSelected is a pointer activation of a dropdown item
type SuggestionSelected struct{ Index int }

// SuggestionHovered moves the highlight under the pointer
type SuggestionHovered struct{ Index int }

// PointerOutside is a pointer action outside the input and the dropdown
type PointerOutside struct{}

// Focused is the search input gaining focus
type Focused struct{}

// SearchSettled is the debounced search term
type SearchSettled struct{ Term string }

// SuggestionsLoaded completes a FetchSuggestions command
type SuggestionsLoaded struct {
	Seq   uint64
	Term  string
	Items []model.Suggestion
}

// WeatherLoaded completes a FetchWeather command
type WeatherLoaded struct {
	Seq     uint64
	Outcome weather.Outcome
}

func (Mounted) isEvent()            {}
func (InputChanged) isEvent()       {}
func (KeyPressed) isEvent()         {}
func (Submitted) isEvent()          {}
func (SuggestionSelected) isEvent() {}
func (SuggestionHovered) isEvent()  {}
func (PointerOutside) isEvent()     {}
func (Focused) isEvent()            {}
func (SearchSettled) isEvent()      {}
func (SuggestionsLoaded) isEvent()  {}
func (WeatherLoaded) isEvent()      {}

// Command is a side effect requested by Reduce
type Command interface {
	isCommand()
}

// DebounceInput feeds the raw input into the debouncer
type DebounceInput struct{ Text string }

// CancelDebounce drops a pending debounced term
type CancelDebounce struct{}

// FetchSuggestions asks the geocoder for matches of Term
type FetchSuggestions struct {
	Seq  uint64
	Term string
}

// FetchWeather asks the weather provider for Location
type FetchWeather struct {
	Seq      uint64
	Location string
}

func (DebounceInput) isCommand()    {}
func (CancelDebounce) isCommand()   {}
func (FetchSuggestions) isCommand() {}
func (FetchWeather) isCommand()     {}
