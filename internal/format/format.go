// Package format turns weather readings into display strings.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	daysOfWeek = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	months     = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

const (
	gradientFrom = "to right"
	gradientTo   = "to top"
)

// FormatDate renders t as "Mon, 15 Jan" using t's own calendar fields
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s", daysOfWeek[t.Weekday()], t.Day(), months[t.Month()-1])
}

// FormatTemperature floors temp and appends a degree sign: 23.9 -> "23°", -1.2 -> "-2°"
func FormatTemperature(temp float64) string {
	if math.IsNaN(temp) || math.IsInf(temp, 0) {
		return "--°"
	}
	floored := math.Floor(temp)
	if floored == 0 {
		// drop the sign of -0
		floored = 0
	}
	return strconv.FormatFloat(floored, 'f', 0, 64) + "°"
}

// FormatHumidity renders a relative humidity percentage
func FormatHumidity(humidity int) string {
	return strconv.Itoa(humidity) + "%"
}

// FormatWind renders a wind speed as reported by the provider
func FormatWind(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64) + " km/h"
}

// ReverseGradientDirection swaps the first "to right" for "to top".
// Empty input is returned unchanged.
func ReverseGradientDirection(gradient string) string {
	if gradient == "" {
		return gradient
	}
	return strings.Replace(gradient, gradientFrom, gradientTo, 1)
}

// IsValidLocation reports whether value has non-whitespace content
func IsValidLocation(value string) bool {
	return strings.TrimSpace(value) != ""
}
