// Package numerator allocates sequential document numbers such as
// invoice numbers (INV-2026-00001). The counter storage is pluggable so
// the same formatting works against Postgres or an in-memory store.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Source hands out counter values. NextValue must atomically advance the
// counter behind key by increment and return the new value; a missing key
// starts from zero.
type Source interface {
	NextValue(ctx context.Context, key string, increment int64) (int64, error)
}

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "INV")
	Prefix string

	// IncludeYear adds the period year to the number
	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month", "never"
	ResetPeriod string
}

// DefaultConfig returns sensible defaults: yearly reset, padded to 5.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

// Service generates formatted document numbers from a Source.
type Service struct {
	source Source

	// cacheMu protects ranges for the cached strategy
	cacheMu sync.Mutex
	ranges  map[string]*cachedRange
}

type cachedRange struct {
	current int64
	max     int64
}

func New(source Source) *Service {
	return &Service{
		source: source,
		ranges: make(map[string]*cachedRange),
	}
}

// Next generates the next number for the period.
// Pattern: PREFIX-YEAR-XXXXX (e.g., INV-2026-00001).
// Numbers are gapless: every call hits the source.
func (s *Service) Next(ctx context.Context, cfg Config, period time.Time) (string, error) {
	if s == nil || s.source == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	num, err := s.source.NextValue(ctx, s.buildKey(cfg, period), 1)
	if err != nil {
		return "", fmt.Errorf("next number: %w", err)
	}
	return s.formatNumber(cfg, period, num), nil
}

// NextCached generates the next number from an in-memory range, refilling
// rangeSize values at a time from the source. Faster than Next but may
// leave gaps across restarts; unsuitable for accounting documents.
func (s *Service) NextCached(ctx context.Context, cfg Config, period time.Time, rangeSize int64) (string, error) {
	if s == nil || s.source == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if rangeSize <= 0 {
		rangeSize = 50
	}
	key := s.buildKey(cfg, period)

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	rng, ok := s.ranges[key]
	if !ok {
		rng = &cachedRange{}
		s.ranges[key] = rng
	}
	if rng.current >= rng.max {
		newMax, err := s.source.NextValue(ctx, key, rangeSize)
		if err != nil {
			return "", fmt.Errorf("reserve range: %w", err)
		}
		rng.current = newMax - rangeSize
		rng.max = newMax
	}
	rng.current++
	return s.formatNumber(cfg, period, rng.current), nil
}

func (s *Service) buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

func (s *Service) formatNumber(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}
	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber extracts the numeric part from a formatted number, the last
// dash-separated segment. Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	idx := strings.LastIndexByte(formatted, '-')
	if idx < 0 || idx+1 >= len(formatted) {
		return -1
	}
	num, err := strconv.ParseInt(formatted[idx+1:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}
