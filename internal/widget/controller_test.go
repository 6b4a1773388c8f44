package widget

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexivanou/weather-widget/internal/model"
	"github.com/alexivanou/weather-widget/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// fakeService answers lookups through the supplied funcs and records calls
type fakeService struct {
	suggest func(ctx context.Context, fragment string) []model.Suggestion
	weather func(ctx context.Context, location string) weather.Outcome

	mu           sync.Mutex
	suggestCalls []string
	weatherCalls []string
}

func (f *fakeService) SuggestCities(ctx context.Context, fragment string) []model.Suggestion {
	f.mu.Lock()
	f.suggestCalls = append(f.suggestCalls, fragment)
	f.mu.Unlock()
	if f.suggest == nil {
		return []model.Suggestion{}
	}
	return f.suggest(ctx, fragment)
}

func (f *fakeService) CurrentWeather(ctx context.Context, location string) weather.Outcome {
	f.mu.Lock()
	f.weatherCalls = append(f.weatherCalls, location)
	f.mu.Unlock()
	if f.weather == nil {
		return success(location, model.ConditionClear, 20)
	}
	return f.weather(ctx, location)
}

func (f *fakeService) suggested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.suggestCalls...)
}

func (f *fakeService) fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.weatherCalls...)
}

// newTestController counts applied events so tests can wait for stale results
func newTestController(t *testing.T, svc *fakeService, opts Options) (*Controller, *atomic.Int64) {
	t.Helper()
	applied := &atomic.Int64{}
	opts.OnChange = func(View) { applied.Add(1) }
	c := NewController(svc, opts)
	t.Cleanup(c.Close)
	return c, applied
}

func TestController_MountFetchesDefaultLocation(t *testing.T) {
	svc := &fakeService{}
	c, _ := newTestController(t, svc, Options{DefaultLocation: "Tbilisi"})

	require.Eventually(t, func() bool {
		return c.State().Phase() == PhaseResultSuccess
	}, waitFor, tick)

	assert.Equal(t, []string{"Tbilisi"}, svc.fetched())
	assert.Equal(t, "Tbilisi", c.View().Location)
	assert.False(t, c.State().InputLocked)
}

func TestController_MountIsAppliedBeforeReturn(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	svc := &fakeService{
		weather: func(_ context.Context, location string) weather.Outcome {
			<-release
			return success(location, model.ConditionClear, 20)
		},
	}

	c, applied := newTestController(t, svc, Options{DefaultLocation: "Tbilisi"})

	assert.Equal(t, int64(1), applied.Load())
	assert.Equal(t, PhaseLoading, c.View().Phase)
	assert.True(t, c.State().Loading)
}

func TestController_AutocompleteAndKeyboardSelection(t *testing.T) {
	svc := &fakeService{
		suggest: func(_ context.Context, fragment string) []model.Suggestion {
			if fragment == "Par" {
				return parisMatches
			}
			return []model.Suggestion{}
		},
	}
	c, _ := newTestController(t, svc, Options{DebounceDelay: 10 * time.Millisecond})

	c.Dispatch(InputChanged{Text: "P"})
	c.Dispatch(InputChanged{Text: "Pa"})
	c.Dispatch(InputChanged{Text: "Par"})

	require.Eventually(t, func() bool {
		s := c.State()
		return s.DropdownOpen && len(s.Suggestions) == 3
	}, waitFor, tick)
	assert.Contains(t, svc.suggested(), "Par")
	assert.NotContains(t, svc.suggested(), "P")

	for i := 0; i < 5; i++ {
		c.Dispatch(KeyPressed{Key: KeyArrowDown})
	}
	require.Eventually(t, func() bool { return c.State().HighlightedIndex == 2 }, waitFor, tick)

	c.Dispatch(KeyPressed{Key: KeyEnter})

	require.Eventually(t, func() bool {
		return c.State().Weather.Name == "Parma"
	}, waitFor, tick)
	s := c.State()
	assert.Empty(t, s.InputText)
	assert.False(t, s.DropdownOpen)
	assert.False(t, s.Loading)
	assert.False(t, s.InputLocked)
}

func TestController_LateMountResultIsDiscarded(t *testing.T) {
	parisStarted := make(chan struct{})
	releaseParis := make(chan struct{})
	svc := &fakeService{
		weather: func(_ context.Context, location string) weather.Outcome {
			if location == "Paris" {
				close(parisStarted)
				<-releaseParis
			}
			return success(location, model.ConditionClear, 18)
		},
	}
	c, applied := newTestController(t, svc, Options{
		DefaultLocation: "Paris",
		DebounceDelay:   time.Hour,
	})

	<-parisStarted
	c.Dispatch(InputChanged{Text: "Berlin"})
	c.Dispatch(Submitted{})

	// Mounted, InputChanged, Submitted, Berlin result
	require.Eventually(t, func() bool { return applied.Load() == 4 }, waitFor, tick)
	require.Equal(t, "Berlin", c.State().Weather.Name)

	close(releaseParis)
	require.Eventually(t, func() bool { return applied.Load() == 5 }, waitFor, tick)

	assert.Equal(t, "Berlin", c.State().Weather.Name)
	assert.False(t, c.State().Loading)
}

func TestController_LateSuggestionsAreDiscarded(t *testing.T) {
	paStarted := make(chan struct{})
	releasePa := make(chan struct{})
	svc := &fakeService{
		suggest: func(_ context.Context, fragment string) []model.Suggestion {
			if fragment == "Pa" {
				close(paStarted)
				<-releasePa
				return []model.Suggestion{model.NewSuggestion("Pattaya", "", "TH", 12.9, 100.9)}
			}
			return parisMatches
		},
	}
	c, applied := newTestController(t, svc, Options{DebounceDelay: 10 * time.Millisecond})

	c.Dispatch(InputChanged{Text: "Pa"})
	<-paStarted
	c.Dispatch(InputChanged{Text: "Par"})

	// InputChanged and SearchSettled for both terms, then the Par result
	require.Eventually(t, func() bool { return applied.Load() == 5 }, waitFor, tick)
	require.Equal(t, parisMatches, c.State().Suggestions)

	close(releasePa)
	require.Eventually(t, func() bool { return applied.Load() == 6 }, waitFor, tick)

	assert.Equal(t, parisMatches, c.State().Suggestions)
}

func TestController_CloseCancelsInFlightLookup(t *testing.T) {
	started := make(chan context.Context, 1)
	release := make(chan struct{})
	svc := &fakeService{
		weather: func(ctx context.Context, location string) weather.Outcome {
			started <- ctx
			<-release
			return success(location, model.ConditionClear, 18)
		},
	}
	c, _ := newTestController(t, svc, Options{DefaultLocation: "Paris"})

	ctx := <-started
	c.Close()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, c.Dispatch(Focused{}))

	close(release)
	assert.Never(t, func() bool {
		return !c.State().Loading
	}, 100*time.Millisecond, tick)
}

func TestController_CloseCancelsPendingDebounce(t *testing.T) {
	svc := &fakeService{}
	c, applied := newTestController(t, svc, Options{DebounceDelay: 30 * time.Millisecond})

	c.Dispatch(InputChanged{Text: "Paris"})
	require.Eventually(t, func() bool { return applied.Load() == 1 }, waitFor, tick)
	c.Close()

	assert.Never(t, func() bool {
		return len(svc.suggested()) > 0
	}, 100*time.Millisecond, tick)
}

func TestController_CloseIsIdempotent(t *testing.T) {
	c, _ := newTestController(t, &fakeService{}, Options{})

	c.Close()
	assert.NotPanics(t, c.Close)
}

func TestController_SendWaitsForEvent(t *testing.T) {
	c, _ := newTestController(t, &fakeService{}, Options{DebounceDelay: time.Hour})

	v, err := c.Send(context.Background(), InputChanged{Text: "Ber"})
	require.NoError(t, err)
	assert.Equal(t, "Ber", v.Input.Text)

	c.Close()
	_, err = c.Send(context.Background(), Focused{})
	assert.ErrorIs(t, err, ErrClosed)
}
