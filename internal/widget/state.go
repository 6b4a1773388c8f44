// Package widget holds the search-and-display state machine behind the
// weather widget: an explicit State, a pure Reduce function over UI events,
// and a Controller that runs the event loop and the network side effects.
package widget

import (
	"github.com/alexivanou/weather-widget/internal/model"
)

const defaultMinChars = 2

// Phase is the composite UI state derived from State
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseSuggestionsOpen Phase = "suggestions_open"
	PhaseLoading         Phase = "loading"
	PhaseResultSuccess   Phase = "result_success"
	PhaseResultNotFound  Phase = "result_not_found"
	PhaseResultError     Phase = "result_error"
)

// State is the whole widget state. It is only changed by Reduce.
//
// HighlightedIndex is -1 or a valid index into Suggestions, and DropdownOpen
// implies len(Suggestions) > 0.
type State struct {
	InputText          string
	Suggestions        []model.Suggestion
	HighlightedIndex   int
	DropdownOpen       bool
	SuggestionsLoading bool

	Loading bool

	// InputLocked blocks new submissions while a user-started lookup runs.
	// The mount-time lookup does not lock, so a quick manual search can
	// supersede it.
	InputLocked bool
	Weather     model.WeatherRecord
	Error       string

	// suggestionsWanted is true while typing or focus allows the dropdown.
	suggestionsWanted bool
	minChars          int

	// Sequence numbers of the latest started requests; results carrying an
	// older number are stale.
	suggestSeq uint64
	weatherSeq uint64
}

// NewState returns the initial state. minChars <= 0 selects the default of 2.
func NewState(minChars int) State {
	if minChars <= 0 {
		minChars = defaultMinChars
	}
	return State{
		HighlightedIndex: -1,
		minChars:         minChars,
	}
}

// Phase derives the composite UI state
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.DropdownOpen:
		return PhaseSuggestionsOpen
	case s.Weather.NotFound:
		return PhaseResultNotFound
	case s.Error != "":
		return PhaseResultError
	case s.Weather.HasReadings():
		return PhaseResultSuccess
	default:
		return PhaseIdle
	}
}

// Highlighted returns the highlighted suggestion, if any
func (s State) Highlighted() (model.Suggestion, bool) {
	if s.HighlightedIndex < 0 || s.HighlightedIndex >= len(s.Suggestions) {
		return model.Suggestion{}, false
	}
	return s.Suggestions[s.HighlightedIndex], true
}
