package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexivanou/weather-widget/internal/debounce"
	"github.com/alexivanou/weather-widget/internal/service"
	"github.com/alexivanou/weather-widget/internal/theme"
	"go.uber.org/zap"
)

const eventBuffer = 64

// ErrClosed is returned by Send once the controller has been closed
var ErrClosed = errors.New("widget: controller closed")

// Options configures a Controller
type Options struct {
	DefaultLocation string
	DebounceDelay   time.Duration
	MinChars        int
	Theme           *theme.Table
	Logger          *zap.Logger
	// Now supplies the date line; defaults to time.Now.
	Now func() time.Time
	// AfterFunc replaces the debounce timer source.
	AfterFunc debounce.AfterFunc
	// OnChange is called on the event loop after every applied event.
	OnChange func(View)
}

// Controller owns one widget's State. Events are applied one at a time on a
// single loop goroutine; lookups run in their own goroutines and report back
// as events.
type Controller struct {
	svc       service.ServiceInterface
	theme     *theme.Table
	logger    *zap.Logger
	now       func() time.Time
	onChange  func(View)
	debouncer *debounce.Debouncer

	events   chan Event
	ctx      context.Context
	cancel   context.CancelFunc
	loopDone chan struct{}

	// Only touched on the loop goroutine.
	suggestCancel context.CancelFunc
	weatherCancel context.CancelFunc

	mu    sync.RWMutex
	state State

	closeOnce sync.Once
}

// NewController starts the event loop and the initial lookup for
// opts.DefaultLocation. The Mounted event has been applied when it returns.
func NewController(svc service.ServiceInterface, opts Options) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		svc:      svc,
		theme:    opts.Theme,
		logger:   opts.Logger,
		now:      opts.Now,
		onChange: opts.OnChange,
		events:   make(chan Event, eventBuffer),
		ctx:      ctx,
		cancel:   cancel,
		loopDone: make(chan struct{}),
		state:    NewState(opts.MinChars),
	}
	if c.theme == nil {
		c.theme = theme.Default()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}

	delay := opts.DebounceDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	var debounceOpts []debounce.Option
	if opts.AfterFunc != nil {
		debounceOpts = append(debounceOpts, debounce.WithAfterFunc(opts.AfterFunc))
	}
	c.debouncer = debounce.New("", delay, func(term string) {
		c.Dispatch(SearchSettled{Term: term})
	}, debounceOpts...)

	go c.run()

	if opts.DefaultLocation != "" {
		// Applied before returning so the first view already shows the lookup
		c.Send(context.Background(), Mounted{Location: opts.DefaultLocation})
	}
	return c
}

// Dispatch queues an event. It returns false once the controller is closed.
func (c *Controller) Dispatch(ev Event) bool {
	if c.ctx.Err() != nil {
		return false
	}
	select {
	case <-c.ctx.Done():
		return false
	case c.events <- ev:
		return true
	}
}

// ack wraps an event whose sender waits for the resulting view
type ack struct {
	ev   Event
	done chan View
}

func (ack) isEvent() {}

// Send queues ev and waits until it has been applied. Lookups the event
// starts may still be running when Send returns.
func (c *Controller) Send(ctx context.Context, ev Event) (View, error) {
	a := ack{ev: ev, done: make(chan View, 1)}
	if !c.Dispatch(a) {
		return View{}, ErrClosed
	}
	select {
	case v := <-a.done:
		return v, nil
	case <-c.loopDone:
		return View{}, ErrClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// View renders the current state
func (c *Controller) View() View {
	return Render(c.State(), c.theme, c.now())
}

// Close stops the debouncer, cancels in-flight lookups and stops the loop.
// Results that arrive afterwards are dropped.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.debouncer.Stop()
		c.cancel()
		<-c.loopDone
	})
}

func (c *Controller) run() {
	defer close(c.loopDone)
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev := <-c.events:
			if a, ok := ev.(ack); ok {
				if v, applied := c.apply(a.ev); applied {
					a.done <- v
				}
				continue
			}
			c.apply(ev)
		}
	}
}

func (c *Controller) apply(ev Event) (View, bool) {
	if c.ctx.Err() != nil {
		return View{}, false
	}

	c.mu.Lock()
	next, cmds := Reduce(c.state, ev)
	c.state = next
	c.mu.Unlock()

	for _, cmd := range cmds {
		c.execute(cmd)
	}

	v := Render(next, c.theme, c.now())
	if c.onChange != nil {
		c.onChange(v)
	}
	return v, true
}

func (c *Controller) execute(cmd Command) {
	switch cmd := cmd.(type) {
	case DebounceInput:
		c.debouncer.Set(cmd.Text)

	case CancelDebounce:
		c.debouncer.Cancel()
		if c.suggestCancel != nil {
			c.suggestCancel()
			c.suggestCancel = nil
		}

	case FetchSuggestions:
		if c.suggestCancel != nil {
			c.suggestCancel()
		}
		ctx, cancel := context.WithCancel(c.ctx)
		c.suggestCancel = cancel
		go func() {
			defer cancel()
			items := c.svc.SuggestCities(ctx, cmd.Term)
			c.Dispatch(SuggestionsLoaded{Seq: cmd.Seq, Term: cmd.Term, Items: items})
		}()

	case FetchWeather:
		if c.weatherCancel != nil {
			c.weatherCancel()
		}
		ctx, cancel := context.WithCancel(c.ctx)
		c.weatherCancel = cancel
		c.logger.Debug("Fetching weather", zap.String("location", cmd.Location), zap.Uint64("seq", cmd.Seq))
		go func() {
			defer cancel()
			outcome := c.svc.CurrentWeather(ctx, cmd.Location)
			c.Dispatch(WeatherLoaded{Seq: cmd.Seq, Outcome: outcome})
		}()
	}
}
