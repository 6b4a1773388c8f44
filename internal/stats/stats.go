package stats

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

type Stats struct {
	Timestamp time.Time    `json:"timestamp"`
	Memory    MemoryStats  `json:"memory"`
	Lookups   LookupStats  `json:"lookups"`
	Sessions  SessionStats `json:"sessions"`
	Runtime   RuntimeStats `json:"runtime"`
}

type MemoryStats struct {
	Alloc        uint64 `json:"alloc"`
	TotalAlloc   uint64 `json:"total_alloc"`
	Sys          uint64 `json:"sys"`
	NumGC        uint32 `json:"num_gc"`
	HeapAlloc    uint64 `json:"heap_alloc"`
	HeapSys      uint64 `json:"heap_sys"`
	HeapInuse    uint64 `json:"heap_inuse"`
	HeapReleased uint64 `json:"heap_released"`
}

type LookupStats struct {
	SuggestRequests int64            `json:"suggest_requests"`
	SuggestResults  int64            `json:"suggest_results"`
	SuggestEmpty    int64            `json:"suggest_empty"`
	WeatherRequests int64            `json:"weather_requests"`
	WeatherOutcomes map[string]int64 `json:"weather_outcomes"`
	SuggestInFlight int64            `json:"suggest_in_flight"`
	WeatherInFlight int64            `json:"weather_in_flight"`
}

type SessionStats struct {
	Active  int64 `json:"active"`
	Created int64 `json:"created"`
}

type RuntimeStats struct {
	NumGoroutines int   `json:"num_goroutines"`
	NumCPU        int   `json:"num_cpu"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

type Collector struct {
	startTime  time.Time
	cachedMem  *MemoryStats
	cacheTime  time.Time
	cacheMutex sync.RWMutex

	suggestRequests atomic.Int64
	suggestResults  atomic.Int64
	suggestEmpty    atomic.Int64
	weatherRequests atomic.Int64
	suggestInFlight atomic.Int64
	weatherInFlight atomic.Int64
	sessionsActive  atomic.Int64
	sessionsCreated atomic.Int64

	outcomesMu sync.Mutex
	outcomes   map[string]int64
}

var (
	memStatsCacheDuration = 5 * time.Second
)

func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		outcomes:  make(map[string]int64),
	}
}

// TrackSuggest marks a suggestion lookup as in flight. Call the returned func
// when it settles.
func (c *Collector) TrackSuggest() func() {
	c.suggestInFlight.Add(1)
	return func() { c.suggestInFlight.Add(-1) }
}

// TrackWeather marks a weather lookup as in flight. Call the returned func
// when it settles.
func (c *Collector) TrackWeather() func() {
	c.weatherInFlight.Add(1)
	return func() { c.weatherInFlight.Add(-1) }
}

// RecordSuggest counts one suggestion lookup and the number of matches it produced
func (c *Collector) RecordSuggest(results int) {
	c.suggestRequests.Add(1)
	c.suggestResults.Add(int64(results))
	if results == 0 {
		c.suggestEmpty.Add(1)
	}
}

// RecordWeather counts one weather lookup by outcome kind
func (c *Collector) RecordWeather(kind string) {
	c.weatherRequests.Add(1)
	c.outcomesMu.Lock()
	c.outcomes[kind]++
	c.outcomesMu.Unlock()
}

func (c *Collector) SessionOpened() {
	c.sessionsActive.Add(1)
	c.sessionsCreated.Add(1)
}

func (c *Collector) SessionClosed() {
	c.sessionsActive.Add(-1)
}

func (c *Collector) Collect() *Stats {
	return &Stats{
		Timestamp: time.Now(),
		Memory:    c.collectMemoryStats(),
		Lookups:   c.collectLookupStats(),
		Sessions: SessionStats{
			Active:  c.sessionsActive.Load(),
			Created: c.sessionsCreated.Load(),
		},
		Runtime: c.collectRuntimeStats(),
	}
}

func (c *Collector) collectMemoryStats() MemoryStats {
	c.cacheMutex.RLock()
	if c.cachedMem != nil && time.Since(c.cacheTime) < memStatsCacheDuration {
		mem := *c.cachedMem
		c.cacheMutex.RUnlock()
		return mem
	}
	c.cacheMutex.RUnlock()

	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	mem := MemoryStats{
		Alloc:        m.Alloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		HeapInuse:    m.HeapInuse,
		HeapReleased: m.HeapReleased,
	}

	c.cachedMem = &mem
	c.cacheTime = time.Now()

	return mem
}

func (c *Collector) collectLookupStats() LookupStats {
	c.outcomesMu.Lock()
	outcomes := make(map[string]int64, len(c.outcomes))
	for k, v := range c.outcomes {
		outcomes[k] = v
	}
	c.outcomesMu.Unlock()

	return LookupStats{
		SuggestRequests: c.suggestRequests.Load(),
		SuggestResults:  c.suggestResults.Load(),
		SuggestEmpty:    c.suggestEmpty.Load(),
		WeatherRequests: c.weatherRequests.Load(),
		WeatherOutcomes: outcomes,
		SuggestInFlight: c.suggestInFlight.Load(),
		WeatherInFlight: c.weatherInFlight.Load(),
	}
}

func (c *Collector) collectRuntimeStats() RuntimeStats {
	uptime := time.Since(c.startTime).Seconds()
	return RuntimeStats{
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		UptimeSeconds: int64(uptime),
	}
}
