package services

import (
	"context"
	"errors"
	"group-trip-planner/internal/domain"
	"testing"
)

type fakeGeocoder struct {
	results []domain.GeocodeCandidate
	err     error
	calls   int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string, limit int) ([]domain.GeocodeCandidate, error) {
	f.calls++
	return f.results, f.err
}

type mapGeocodeCache map[string][]domain.GeocodeCandidate

func (m mapGeocodeCache) Get(ctx context.Context, q string) ([]domain.GeocodeCandidate, bool, error) {
	v, ok := m[q]
	return v, ok, nil
}

func (m mapGeocodeCache) Put(ctx context.Context, q string, r []domain.GeocodeCandidate) error {
	m[q] = r
	return nil
}

func TestGeocodeDedupesAndCaches(t *testing.T) {
	g := &fakeGeocoder{results: []domain.GeocodeCandidate{
		{Address: "A", Lat: 48.8556001, Lng: 2.3601},
		{Address: "A duplicate", Lat: 48.8556002, Lng: 2.3601},
		{Address: "B", Lat: 45, Lng: 5},
	}}
	cache := mapGeocodeCache{}

	got, err := Geocode(context.Background(), g, cache, nil, " rivoli ", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Address != "A" || got[1].Address != "B" {
		t.Fatalf("expected deduped candidates, got %+v", got)
	}

	if _, err := Geocode(context.Background(), g, cache, nil, "rivoli", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.calls != 1 {
		t.Fatalf("expected second lookup served from cache, got %d calls", g.calls)
	}
}

func TestGeocodeRejectsShortQuery(t *testing.T) {
	_, err := Geocode(context.Background(), &fakeGeocoder{}, nil, nil, " ab ", 6)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
