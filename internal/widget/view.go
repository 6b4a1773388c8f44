package widget

import (
	"fmt"
	"time"

	"github.com/alexivanou/weather-widget/internal/format"
	"github.com/alexivanou/weather-widget/internal/theme"
)

const placeholderLocation = "Search for a location"

// View is the render-ready form of State
type View struct {
	Phase           Phase         `json:"phase"`
	Location        string        `json:"location"`
	Input           InputView     `json:"input"`
	Dropdown        DropdownView  `json:"dropdown"`
	Error           string        `json:"error,omitempty"`
	Loading         bool          `json:"loading"`
	NotFound        bool          `json:"not_found"`
	Weather         *WeatherPanel `json:"weather,omitempty"`
	Background      string        `json:"background"`
	PanelBackground string        `json:"panel_background"`
}

type InputView struct {
	Text     string `json:"text"`
	Disabled bool   `json:"disabled"`
}

type DropdownView struct {
	Open    bool           `json:"open"`
	Loading bool           `json:"loading"`
	Items   []DropdownItem `json:"items,omitempty"`
}

// DropdownItem is one rendered suggestion. Key is unique within the list even
// when names repeat.
type DropdownItem struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Details     string `json:"details"`
	Highlighted bool   `json:"highlighted"`
}

type WeatherPanel struct {
	Condition   string `json:"condition"`
	Image       string `json:"image,omitempty"`
	Temperature string `json:"temperature"`
	Date        string `json:"date"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
}

// Render builds the view for s. now supplies the date line.
func Render(s State, table *theme.Table, now time.Time) View {
	condition := s.Weather.Condition()
	style := table.Lookup(condition)

	v := View{
		Phase:    s.Phase(),
		Location: s.Weather.Name,
		Input: InputView{
			Text:     s.InputText,
			Disabled: s.InputLocked,
		},
		Error:           s.Error,
		Loading:         s.Loading,
		NotFound:        !s.Loading && s.Weather.NotFound,
		Background:      style.Gradient,
		PanelBackground: format.ReverseGradientDirection(style.Gradient),
	}
	if v.Location == "" {
		v.Location = placeholderLocation
	}

	if s.DropdownOpen {
		v.Dropdown = DropdownView{
			Open:    true,
			Loading: s.SuggestionsLoading,
			Items:   make([]DropdownItem, 0, len(s.Suggestions)),
		}
		for i, sg := range s.Suggestions {
			v.Dropdown.Items = append(v.Dropdown.Items, DropdownItem{
				Key:         fmt.Sprintf("%v-%v-%d", sg.Lat, sg.Lon, i),
				Name:        sg.Name,
				Details:     sg.Details(),
				Highlighted: i == s.HighlightedIndex,
			})
		}
	}

	if !s.Loading && s.Weather.HasReadings() {
		v.Weather = &WeatherPanel{
			Condition:   string(condition),
			Image:       style.Image,
			Temperature: format.FormatTemperature(s.Weather.Main.Temp),
			Date:        format.FormatDate(now),
			Humidity:    format.FormatHumidity(s.Weather.Main.Humidity),
			Wind:        format.FormatWind(s.Weather.Wind.Speed),
		}
	}

	return v
}
