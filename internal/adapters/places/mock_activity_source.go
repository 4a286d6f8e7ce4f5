package places

import (
	"context"
	"group-trip-planner/internal/domain"
	"slices"
	"strings"
	"sync"
)

type MockSpot struct {
	Name       string
	Category   domain.Category
	Rating     float64
	PriceLevel int
	Lat, Lng   float64
	Duration   int
}

// MockActivitySource serves fixed activities per destination, or Err for
// every call when set.
type MockActivitySource struct {
	mu    sync.Mutex
	m     map[string][]domain.Activity
	Err   error
	calls int
}

func NewMockActivitySource(destination string, spots []MockSpot) *MockActivitySource {
	src := &MockActivitySource{m: make(map[string][]domain.Activity)}
	src.Add(destination, spots)
	return src
}

func (s *MockActivitySource) Add(destination string, spots []MockSpot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(destination))
	for _, sp := range spots {
		s.m[key] = append(s.m[key], domain.Activity{
			Name:            sp.Name,
			Category:        sp.Category,
			Rating:          sp.Rating,
			PriceLevel:      sp.PriceLevel,
			Lat:             sp.Lat,
			Lng:             sp.Lng,
			DurationMinutes: sp.Duration,
		})
	}
}

func (s *MockActivitySource) FetchActivities(ctx context.Context, destination string, lat, lng float64) ([]domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return slices.Clone(s.m[strings.ToLower(strings.TrimSpace(destination))]), nil
}

func (s *MockActivitySource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
