package widget

import (
	"testing"

	"github.com/alexivanou/weather-widget/internal/model"
	"github.com/alexivanou/weather-widget/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parisMatches = []model.Suggestion{
	model.NewSuggestion("Paris", "Ile-de-France", "FR", 48.8589, 2.32),
	model.NewSuggestion("Paris", "Texas", "US", 33.66, -95.55),
	model.NewSuggestion("Parma", "Emilia-Romagna", "IT", 44.80, 10.33),
}

// reduceAll applies events in order and collects every command
func reduceAll(s State, events ...Event) (State, []Command) {
	var all []Command
	for _, ev := range events {
		var cmds []Command
		s, cmds = Reduce(s, ev)
		all = append(all, cmds...)
	}
	return s, all
}

// withSuggestions types "Par" and delivers parisMatches
func withSuggestions(t *testing.T) State {
	t.Helper()
	s, cmds := reduceAll(NewState(2), InputChanged{Text: "Par"}, SearchSettled{Term: "Par"})
	require.Contains(t, cmds, Command(FetchSuggestions{Seq: 1, Term: "Par"}))
	s, _ = Reduce(s, SuggestionsLoaded{Seq: 1, Term: "Par", Items: parisMatches})
	require.True(t, s.DropdownOpen)
	require.Equal(t, -1, s.HighlightedIndex)
	return s
}

func success(name string, condition model.Condition, temp float64) weather.Outcome {
	return weather.Outcome{
		Kind:     weather.KindSuccess,
		Location: name,
		Record: model.WeatherRecord{
			Name:    name,
			Weather: []model.WeatherSummary{{Main: condition}},
			Main:    model.MainReadings{Temp: temp, Humidity: 60},
			Wind:    model.WindReadings{Speed: 4.1},
		},
	}
}

func TestReduce_InitialState(t *testing.T) {
	s := NewState(0)

	assert.Equal(t, -1, s.HighlightedIndex)
	assert.False(t, s.DropdownOpen)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, 2, s.minChars)
}

func TestReduce_Mounted(t *testing.T) {
	s, cmds := Reduce(NewState(2), Mounted{Location: "Tbilisi"})

	assert.Equal(t, []Command{FetchWeather{Seq: 1, Location: "Tbilisi"}}, cmds)
	assert.True(t, s.Loading)
	assert.False(t, s.InputLocked)
	assert.Equal(t, PhaseLoading, s.Phase())

	s, cmds = Reduce(NewState(2), Mounted{Location: "  "})
	assert.Empty(t, cmds)
	assert.False(t, s.Loading)
}

func TestReduce_Typing(t *testing.T) {
	s, cmds := Reduce(NewState(2), InputChanged{Text: "P"})

	assert.Equal(t, []Command{DebounceInput{Text: "P"}}, cmds)
	assert.Equal(t, "P", s.InputText)
	assert.False(t, s.DropdownOpen)

	t.Run("Short settled term clears suggestions without fetching", func(t *testing.T) {
		s := withSuggestions(t)
		s, cmds := reduceAll(s, InputChanged{Text: "P"}, SearchSettled{Term: "P"})
		assert.Equal(t, []Command{DebounceInput{Text: "P"}}, cmds)
		assert.Empty(t, s.Suggestions)
		assert.False(t, s.DropdownOpen)
		assert.False(t, s.SuggestionsLoading)
	})

	t.Run("Empty result keeps dropdown closed", func(t *testing.T) {
		s, _ := reduceAll(NewState(2), InputChanged{Text: "Zzz"}, SearchSettled{Term: "Zzz"})
		assert.True(t, s.SuggestionsLoading)
		s, _ = Reduce(s, SuggestionsLoaded{Seq: 1, Term: "Zzz", Items: []model.Suggestion{}})
		assert.False(t, s.SuggestionsLoading)
		assert.False(t, s.DropdownOpen)
	})
}

func TestReduce_KeyboardNavigation(t *testing.T) {
	s := withSuggestions(t)

	for i := 0; i < 5; i++ {
		s, _ = Reduce(s, KeyPressed{Key: KeyArrowDown})
	}
	assert.Equal(t, 2, s.HighlightedIndex)

	s, _ = Reduce(s, KeyPressed{Key: KeyArrowUp})
	assert.Equal(t, 1, s.HighlightedIndex)

	s, _ = reduceAll(s, KeyPressed{Key: KeyArrowUp}, KeyPressed{Key: KeyArrowUp}, KeyPressed{Key: KeyArrowUp})
	assert.Equal(t, -1, s.HighlightedIndex)

	t.Run("Ignored while dropdown is closed", func(t *testing.T) {
		s := withSuggestions(t)
		s, _ = reduceAll(s, KeyPressed{Key: KeyEscape}, KeyPressed{Key: KeyArrowDown})
		assert.Equal(t, -1, s.HighlightedIndex)
	})
}

func TestReduce_EscapeAndOutsideClick(t *testing.T) {
	for _, ev := range []Event{KeyPressed{Key: KeyEscape}, PointerOutside{}} {
		s := withSuggestions(t)
		s, _ = Reduce(s, KeyPressed{Key: KeyArrowDown})

		s, cmds := Reduce(s, ev)

		assert.Empty(t, cmds)
		assert.False(t, s.DropdownOpen)
		assert.Equal(t, -1, s.HighlightedIndex)
		assert.Equal(t, "Par", s.InputText)
		assert.Len(t, s.Suggestions, 3)
	}
}

func TestReduce_Focus(t *testing.T) {
	s := withSuggestions(t)
	s, _ = Reduce(s, PointerOutside{})
	require.False(t, s.DropdownOpen)

	s, _ = Reduce(s, Focused{})
	assert.True(t, s.DropdownOpen)

	t.Run("Short input does not reopen", func(t *testing.T) {
		s := withSuggestions(t)
		s.InputText = "P"
		s, _ = reduceAll(s, PointerOutside{}, Focused{})
		assert.False(t, s.DropdownOpen)
	})
}

func TestReduce_Hover(t *testing.T) {
	s := withSuggestions(t)

	s, _ = Reduce(s, SuggestionHovered{Index: 2})
	assert.Equal(t, 2, s.HighlightedIndex)

	s, _ = Reduce(s, SuggestionHovered{Index: 7})
	assert.Equal(t, 2, s.HighlightedIndex)
}

func TestReduce_Submit(t *testing.T) {
	s, _ := Reduce(NewState(2), InputChanged{Text: "Berlin"})

	s, cmds := Reduce(s, Submitted{})

	assert.Equal(t, []Command{CancelDebounce{}, FetchWeather{Seq: 1, Location: "Berlin"}}, cmds)
	assert.Equal(t, "", s.InputText)
	assert.True(t, s.Loading)
	assert.True(t, s.InputLocked)
	assert.False(t, s.DropdownOpen)

	t.Run("Blank input is ignored", func(t *testing.T) {
		s, _ := Reduce(NewState(2), InputChanged{Text: "   "})
		next, cmds := Reduce(s, Submitted{})
		assert.Empty(t, cmds)
		assert.Equal(t, s, next)
	})

	t.Run("Locked while a user lookup is loading", func(t *testing.T) {
		s, _ := reduceAll(s, InputChanged{Text: "Rome"})
		s, cmds := Reduce(s, KeyPressed{Key: KeyEnter})
		assert.Empty(t, cmds)
		assert.Equal(t, "Rome", s.InputText)
	})
}

func TestReduce_EnterSelectsHighlighted(t *testing.T) {
	s := withSuggestions(t)
	s, _ = reduceAll(s, KeyPressed{Key: KeyArrowDown}, KeyPressed{Key: KeyArrowDown})

	s, cmds := Reduce(s, KeyPressed{Key: KeyEnter})

	require.Len(t, cmds, 2)
	assert.Equal(t, FetchWeather{Seq: 1, Location: "Paris"}, cmds[1])
	assert.Empty(t, s.Suggestions)
	assert.Equal(t, -1, s.HighlightedIndex)
	assert.Equal(t, "", s.InputText)
}

func TestReduce_EnterWithoutHighlightSubmitsText(t *testing.T) {
	s := withSuggestions(t)

	_, cmds := Reduce(s, KeyPressed{Key: KeyEnter})

	assert.Contains(t, cmds, Command(FetchWeather{Seq: 1, Location: "Par"}))
}

func TestReduce_SuggestionSelected(t *testing.T) {
	s := withSuggestions(t)

	s, cmds := Reduce(s, SuggestionSelected{Index: 2})
	assert.Contains(t, cmds, Command(FetchWeather{Seq: 1, Location: "Parma"}))
	assert.Empty(t, s.Suggestions)

	_, cmds = Reduce(withSuggestions(t), SuggestionSelected{Index: 3})
	assert.Empty(t, cmds)

	t.Run("Ignored while dropdown is closed", func(t *testing.T) {
		s := withSuggestions(t)
		s, _ = Reduce(s, KeyPressed{Key: KeyEscape})
		require.Len(t, s.Suggestions, 3)

		next, cmds := Reduce(s, SuggestionSelected{Index: 2})

		assert.Empty(t, cmds)
		assert.Equal(t, s, next)
	})
}

func TestReduce_StaleSuggestionsDiscarded(t *testing.T) {
	s, _ := reduceAll(NewState(2),
		InputChanged{Text: "Pa"}, SearchSettled{Term: "Pa"},
		InputChanged{Text: "Par"}, SearchSettled{Term: "Par"},
	)

	s, _ = Reduce(s, SuggestionsLoaded{Seq: 2, Term: "Par", Items: parisMatches})
	s, _ = Reduce(s, SuggestionsLoaded{Seq: 1, Term: "Pa", Items: []model.Suggestion{
		model.NewSuggestion("Pattaya", "", "TH", 12.9, 100.9),
	}})

	assert.Equal(t, parisMatches, s.Suggestions)

	t.Run("Submit invalidates in-flight suggestions", func(t *testing.T) {
		s, _ := reduceAll(NewState(2), InputChanged{Text: "Rome"}, SearchSettled{Term: "Rome"}, Submitted{})
		s, _ = Reduce(s, SuggestionsLoaded{Seq: 1, Term: "Rome", Items: parisMatches})
		assert.Empty(t, s.Suggestions)
		assert.False(t, s.DropdownOpen)
	})
}

func TestReduce_StaleWeatherDiscarded(t *testing.T) {
	// Paris is the mount lookup, Berlin a manual search started before it resolves
	s, _ := reduceAll(NewState(2), Mounted{Location: "Paris"}, InputChanged{Text: "Berlin"}, Submitted{})

	s, _ = Reduce(s, WeatherLoaded{Seq: 2, Outcome: success("Berlin", model.ConditionRain, 11.2)})
	s, _ = Reduce(s, WeatherLoaded{Seq: 1, Outcome: success("Paris", model.ConditionClear, 21.0)})

	assert.Equal(t, "Berlin", s.Weather.Name)
	assert.False(t, s.Loading)
	assert.Equal(t, PhaseResultSuccess, s.Phase())
}

func TestReduce_Outcomes(t *testing.T) {
	started, _ := Reduce(NewState(2), Mounted{Location: "Atlantis"})

	tests := []struct {
		name     string
		outcome  weather.Outcome
		phase    Phase
		notFound bool
		errText  string
	}{
		{
			name:    "Success",
			outcome: success("Atlantis", model.ConditionFog, 9),
			phase:   PhaseResultSuccess,
		},
		{
			name: "Not found",
			outcome: weather.Outcome{
				Kind: weather.KindNotFound, Location: "Atlantis",
				Record: model.NotFoundRecord(), Err: weather.ErrNotFound,
			},
			phase:    PhaseResultNotFound,
			notFound: true,
			errText:  `Location "Atlantis" not found. Please try another location.`,
		},
		{
			name:    "Invalid key",
			outcome: weather.Outcome{Kind: weather.KindInvalidAPIKey, Err: weather.ErrInvalidAPIKey},
			phase:   PhaseResultError,
			errText: "Invalid API key. Please check your configuration.",
		},
		{
			name:    "Transport",
			outcome: weather.Outcome{Kind: weather.KindError, Err: weather.ErrTransport},
			phase:   PhaseResultError,
			errText: "Network error. Please check your internet connection.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A previous result must not survive a failed lookup
			s := started
			s.Weather = success("Old", model.ConditionClear, 30).Record

			s, _ = Reduce(s, WeatherLoaded{Seq: 1, Outcome: tt.outcome})

			assert.False(t, s.Loading)
			assert.Equal(t, tt.phase, s.Phase())
			assert.Equal(t, tt.notFound, s.Weather.NotFound)
			assert.Equal(t, tt.errText, s.Error)
			if tt.errText != "" {
				assert.NotEqual(t, "Old", s.Weather.Name)
			}
		})
	}
}

func TestReduce_NewLookupClearsError(t *testing.T) {
	s, _ := reduceAll(NewState(2), Mounted{Location: "Atlantis"},
		WeatherLoaded{Seq: 1, Outcome: weather.Outcome{Kind: weather.KindError, Err: weather.ErrTransport}})
	require.NotEmpty(t, s.Error)

	s, _ = reduceAll(s, InputChanged{Text: "Oslo"}, Submitted{})
	assert.Empty(t, s.Error)
	assert.Equal(t, PhaseLoading, s.Phase())
}
