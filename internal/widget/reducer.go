package widget

import (
	"unicode/utf8"

	"github.com/alexivanou/weather-widget/internal/format"
	"github.com/alexivanou/weather-widget/internal/model"
	"github.com/alexivanou/weather-widget/internal/weather"
)

// Reduce applies one event and returns the next state plus the side effects
// the caller must run. It does not mutate s.
func Reduce(s State, ev Event) (State, []Command) {
	if s.minChars <= 0 {
		s.minChars = defaultMinChars
	}

	switch e := ev.(type) {
	case Mounted:
		if !format.IsValidLocation(e.Location) {
			return s, nil
		}
		return s.startWeather(e.Location, false)

	case InputChanged:
		s.InputText = e.Text
		s.suggestionsWanted = true
		s.HighlightedIndex = -1
		s.DropdownOpen = len(s.Suggestions) > 0
		return s, []Command{DebounceInput{Text: e.Text}}

	case SearchSettled:
		s.suggestSeq++
		if utf8.RuneCountInString(e.Term) < s.minChars {
			s.SuggestionsLoading = false
			return s.replaceSuggestions(nil), nil
		}
		s.SuggestionsLoading = true
		return s, []Command{FetchSuggestions{Seq: s.suggestSeq, Term: e.Term}}

	case SuggestionsLoaded:
		if e.Seq != s.suggestSeq {
			return s, nil
		}
		s.SuggestionsLoading = false
		return s.replaceSuggestions(e.Items), nil

	case KeyPressed:
		return s.keyPressed(e.Key)

	case Submitted:
		return s.submit(s.InputText)

	case SuggestionSelected:
		if !s.DropdownOpen || e.Index < 0 || e.Index >= len(s.Suggestions) {
			return s, nil
		}
		return s.submit(s.Suggestions[e.Index].Name)

	case SuggestionHovered:
		if s.DropdownOpen && e.Index >= 0 && e.Index < len(s.Suggestions) {
			s.HighlightedIndex = e.Index
		}
		return s, nil

	case PointerOutside:
		return s.closeDropdown(), nil

	case Focused:
		if utf8.RuneCountInString(s.InputText) >= s.minChars {
			s.suggestionsWanted = true
			s.DropdownOpen = len(s.Suggestions) > 0
		}
		return s, nil

	case WeatherLoaded:
		if e.Seq != s.weatherSeq {
			return s, nil
		}
		s.Loading = false
		s.InputLocked = false
		return s.applyOutcome(e.Outcome), nil
	}

	return s, nil
}

func (s State) keyPressed(key Key) (State, []Command) {
	switch key {
	case KeyEnter:
		if suggestion, ok := s.Highlighted(); ok {
			return s.submit(suggestion.Name)
		}
		return s.submit(s.InputText)
	case KeyArrowDown:
		if s.DropdownOpen && s.HighlightedIndex < len(s.Suggestions)-1 {
			s.HighlightedIndex++
		}
	case KeyArrowUp:
		if s.DropdownOpen {
			if s.HighlightedIndex > 0 {
				s.HighlightedIndex--
			} else {
				s.HighlightedIndex = -1
			}
		}
	case KeyEscape:
		s = s.closeDropdown()
	}
	return s, nil
}

// submit is ignored while a user-started lookup is loading or when location is blank
func (s State) submit(location string) (State, []Command) {
	if s.InputLocked || !format.IsValidLocation(location) {
		return s, nil
	}

	s.InputText = ""
	s.suggestionsWanted = false
	s.suggestSeq++
	s.SuggestionsLoading = false
	s = s.replaceSuggestions(nil)

	next, cmds := s.startWeather(location, true)
	return next, append([]Command{CancelDebounce{}}, cmds...)
}

func (s State) startWeather(location string, lockInput bool) (State, []Command) {
	s.weatherSeq++
	s.Loading = true
	s.InputLocked = lockInput
	s.Error = ""
	return s, []Command{FetchWeather{Seq: s.weatherSeq, Location: location}}
}

func (s State) applyOutcome(o weather.Outcome) State {
	switch o.Kind {
	case weather.KindSuccess:
		s.Weather = o.Record
		s.Error = ""
	case weather.KindNotFound:
		s.Weather = model.NotFoundRecord()
		s.Error = o.Message()
	default:
		s.Weather = model.WeatherRecord{}
		s.Error = o.Message()
	}
	return s
}

func (s State) replaceSuggestions(items []model.Suggestion) State {
	s.Suggestions = items
	s.HighlightedIndex = -1
	s.DropdownOpen = s.suggestionsWanted && len(items) > 0
	return s
}

func (s State) closeDropdown() State {
	s.suggestionsWanted = false
	s.DropdownOpen = false
	s.HighlightedIndex = -1
	return s
}
