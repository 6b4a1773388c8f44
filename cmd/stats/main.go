package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/alexivanou/weather-widget/internal/stats"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const defaultStatsURL = "http://localhost:8080/api/v1/stats"

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	_ = godotenv.Load()

	statsURL := os.Getenv("STATS_URL")
	if statsURL == "" {
		statsURL = defaultStatsURL
	}

	logger.Info("Collecting statistics...", zap.String("url", statsURL))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	statistics, err := fetchStats(ctx, statsURL)
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	outputFormat := os.Getenv("OUTPUT_FORMAT")
	if outputFormat == "" {
		outputFormat = "json"
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(statistics); err != nil {
			logger.Fatal("Failed to encode statistics", zap.Error(err))
		}
	case "text", "human":
		printHumanReadable(statistics)
	default:
		logger.Fatal("Unknown output format", zap.String("format", outputFormat))
	}
}

func fetchStats(ctx context.Context, url string) (*stats.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var s stats.Stats
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &s, nil
}

func printHumanReadable(s *stats.Stats) {
	fmt.Println("=== Application Statistics ===")
	fmt.Printf("Timestamp: %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println()

	fmt.Println("--- Memory Statistics ---")
	fmt.Printf("Allocated:        %s\n", formatBytes(s.Memory.Alloc))
	fmt.Printf("Total Allocated:  %s\n", formatBytes(s.Memory.TotalAlloc))
	fmt.Println()

	fmt.Println("--- Lookup Statistics ---")
	fmt.Printf("Suggest Requests: %d\n", s.Lookups.SuggestRequests)
	fmt.Printf("Suggest Results:  %d\n", s.Lookups.SuggestResults)
	fmt.Printf("Empty Suggests:   %d\n", s.Lookups.SuggestEmpty)
	fmt.Printf("Weather Requests: %d\n", s.Lookups.WeatherRequests)
	fmt.Printf("In Flight:        %d suggest, %d weather\n", s.Lookups.SuggestInFlight, s.Lookups.WeatherInFlight)
	kinds := make([]string, 0, len(s.Lookups.WeatherOutcomes))
	for kind := range s.Lookups.WeatherOutcomes {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("  %-16s: %10d\n", kind, s.Lookups.WeatherOutcomes[kind])
	}
	fmt.Println()

	fmt.Println("--- Sessions ---")
	fmt.Printf("Active:          %d\n", s.Sessions.Active)
	fmt.Printf("Created:         %d\n", s.Sessions.Created)
	fmt.Println()

	fmt.Println("--- Runtime Statistics ---")
	fmt.Printf("Goroutines:      %d\n", s.Runtime.NumGoroutines)
	fmt.Printf("Uptime:          %ds\n", s.Runtime.UptimeSeconds)
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
