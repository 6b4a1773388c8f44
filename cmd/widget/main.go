package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/alexivanou/weather-widget/internal/config"
	"github.com/alexivanou/weather-widget/internal/geocoding"
	"github.com/alexivanou/weather-widget/internal/service"
	"github.com/alexivanou/weather-widget/internal/theme"
	"github.com/alexivanou/weather-widget/internal/weather"
	"github.com/alexivanou/weather-widget/internal/widget"
	"go.uber.org/zap"
)

const usage = `Type a location to search, or one of:
  :down :up :enter :esc   keyboard
  :pick N  :hover N       pointer on suggestion N
  :focus :outside         focus the input / click outside
  :submit                 search for the typed text
  :quit`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	table := theme.Default()
	if cfg.Widget.ThemeFile != "" {
		if table, err = theme.Load(cfg.Widget.ThemeFile); err != nil {
			logger.Fatal("Failed to load theme", zap.Error(err))
		}
	}

	svc := service.NewService(
		geocoding.NewClient(cfg.Provider, geocoding.WithLogger(logger)),
		weather.NewClient(cfg.Provider, weather.WithLogger(logger)),
		nil,
	)

	var out sync.Mutex
	c := widget.NewController(svc, widget.Options{
		DefaultLocation: cfg.Widget.DefaultLocation,
		DebounceDelay:   cfg.Widget.DebounceDelay,
		MinChars:        cfg.Provider.MinChars,
		Theme:           table,
		Logger:          logger,
		OnChange: func(v widget.View) {
			out.Lock()
			defer out.Unlock()
			printView(os.Stdout, v)
		},
	})
	defer c.Close()

	fmt.Println(usage)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		ev, quit, err := parseLine(scanner.Text())
		if quit {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		c.Dispatch(ev)
	}
	if err := scanner.Err(); err != nil {
		logger.Error("Failed to read input", zap.Error(err))
	}
}

// parseLine maps one input line to a widget event
func parseLine(line string) (widget.Event, bool, error) {
	if !strings.HasPrefix(line, ":") {
		return widget.InputChanged{Text: line}, false, nil
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return nil, true, nil
	case ":down":
		return widget.KeyPressed{Key: widget.KeyArrowDown}, false, nil
	case ":up":
		return widget.KeyPressed{Key: widget.KeyArrowUp}, false, nil
	case ":enter":
		return widget.KeyPressed{Key: widget.KeyEnter}, false, nil
	case ":esc":
		return widget.KeyPressed{Key: widget.KeyEscape}, false, nil
	case ":focus":
		return widget.Focused{}, false, nil
	case ":outside":
		return widget.PointerOutside{}, false, nil
	case ":submit":
		return widget.Submitted{}, false, nil
	case ":pick", ":hover":
		if len(fields) != 2 {
			return nil, false, fmt.Errorf("%s needs a suggestion number", fields[0])
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return nil, false, fmt.Errorf("invalid suggestion number %q", fields[1])
		}
		if fields[0] == ":pick" {
			return widget.SuggestionSelected{Index: n - 1}, false, nil
		}
		return widget.SuggestionHovered{Index: n - 1}, false, nil
	}
	return nil, false, fmt.Errorf("unknown command %q", fields[0])
}

func printView(w io.Writer, v widget.View) {
	fmt.Fprintf(w, "\n== %s == [%s]\n", v.Location, v.Phase)

	input := v.Input.Text
	if v.Input.Disabled {
		input += " (locked)"
	}
	fmt.Fprintf(w, "search: %s\n", input)

	if v.Dropdown.Open {
		for i, item := range v.Dropdown.Items {
			marker := " "
			if item.Highlighted {
				marker = ">"
			}
			fmt.Fprintf(w, " %s %d. %s", marker, i+1, item.Name)
			if item.Details != "" {
				fmt.Fprintf(w, " (%s)", item.Details)
			}
			fmt.Fprintln(w)
		}
		if v.Dropdown.Loading {
			fmt.Fprintln(w, "   ...")
		}
	}

	switch {
	case v.Loading:
		fmt.Fprintln(w, "loading...")
	case v.Error != "":
		fmt.Fprintf(w, "error: %s\n", v.Error)
	}

	if p := v.Weather; p != nil {
		fmt.Fprintf(w, "%s %s  %s\n", p.Condition, p.Temperature, p.Date)
		fmt.Fprintf(w, "humidity %s  wind %s\n", p.Humidity, p.Wind)
	}
}
