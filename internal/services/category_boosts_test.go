package services

import (
	"context"
	"errors"
	"group-trip-planner/internal/domain"
	"sync"
	"testing"
	"time"
)

type fakeAdvisor struct {
	mu     sync.Mutex
	out    map[string]any
	err    error
	wait   bool
	delay  time.Duration
	calls  int
	byDest map[string]int
}

func (f *fakeAdvisor) RefineBoosts(ctx context.Context, destination string, categories []domain.Category, current domain.BoostTable) (map[string]any, error) {
	f.mu.Lock()
	f.calls++
	if f.byDest == nil {
		f.byDest = map[string]int{}
	}
	f.byDest[destination]++
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.out, f.err
}

func TestHeuristicBoostsTropical(t *testing.T) {
	cats := []domain.Category{domain.CategoryPark, domain.CategoryMuseum, domain.CategorySpa, domain.CategoryBar}
	got := HeuristicBoosts("  Maui, HAWAII ", cats)

	if got[domain.CategoryPark] <= got[domain.CategoryMuseum] {
		t.Fatalf("expected park > museum, got park=%v museum=%v", got[domain.CategoryPark], got[domain.CategoryMuseum])
	}
	if got[domain.CategorySpa] < 1.1 {
		t.Fatalf("expected spa >= 1.1, got %v", got[domain.CategorySpa])
	}
	if got[domain.CategoryBar] != 1.0 {
		t.Fatalf("expected bar untouched at 1.0, got %v", got[domain.CategoryBar])
	}
	if _, ok := got[domain.CategoryBeach]; ok {
		t.Fatalf("expected only requested categories in table, got %v", got)
	}
}

func TestHeuristicBoostsComposeAcrossProfiles(t *testing.T) {
	// "island" (tropical) and "mountain" (nature) both match.
	got := HeuristicBoosts("Mountain Island Retreat", []domain.Category{domain.CategoryHike, domain.CategoryMuseum})
	if got[domain.CategoryHike] != 1.28 {
		t.Fatalf("expected hike 1.28, got %v", got[domain.CategoryHike])
	}
	if got[domain.CategoryMuseum] != 0.9 {
		t.Fatalf("expected museum 0.9, got %v", got[domain.CategoryMuseum])
	}
}

func TestHeuristicBoostsProfileTables(t *testing.T) {
	all := []domain.Category{
		domain.CategoryFood, domain.CategoryRestaurant, domain.CategoryBar, domain.CategoryNightclub,
		domain.CategoryMuseum, domain.CategoryLandmark, domain.CategoryCulture, domain.CategoryPark,
		domain.CategoryHike, domain.CategorySpa, domain.CategoryBeach, domain.CategoryRelaxation,
	}
	cases := []struct {
		destination string
		want        domain.BoostTable
	}{
		{"Maui", domain.BoostTable{
			domain.CategoryBeach: 1.35, domain.CategoryPark: 1.22, domain.CategoryHike: 1.2,
			domain.CategorySpa: 1.18, domain.CategoryRelaxation: 1.2, domain.CategoryLandmark: 1.08,
			domain.CategoryMuseum: 0.9,
		}},
		{"Banff", domain.BoostTable{
			domain.CategoryPark: 1.28, domain.CategoryHike: 1.28, domain.CategoryLandmark: 1.1,
			domain.CategoryRelaxation: 1.12, domain.CategoryNightclub: 0.9,
		}},
		{"Paris", domain.BoostTable{
			domain.CategoryMuseum: 1.16, domain.CategoryLandmark: 1.14, domain.CategoryCulture: 1.12,
			domain.CategoryRestaurant: 1.08, domain.CategoryFood: 1.06,
		}},
	}
	for _, tc := range cases {
		got := HeuristicBoosts(tc.destination, all)
		for _, c := range all {
			want, ok := tc.want[c]
			if !ok {
				want = 1.0
			}
			if got[c] != want {
				t.Fatalf("%s: expected %s=%v, got %v", tc.destination, c, want, got[c])
			}
		}
	}
}

func TestResolveNeutralDestinationWithoutAdvisor(t *testing.T) {
	r := NewBoostResolver(nil, nil, 0, nil)
	got := r.Resolve(context.Background(), "Springfield", []domain.Category{domain.CategoryMuseum, domain.CategoryFood, domain.CategorySpa})

	if len(got) != 3 {
		t.Fatalf("expected 3 categories, got %v", got)
	}
	for c, v := range got {
		if v != 1.0 {
			t.Fatalf("expected %s=1.0, got %v", c, v)
		}
	}
}

func TestResolveEmptyCategories(t *testing.T) {
	r := NewBoostResolver(nil, nil, 0, nil)
	if got := r.Resolve(context.Background(), "Paris", nil); len(got) != 0 {
		t.Fatalf("expected empty table, got %v", got)
	}
}

func TestResolveReturnsCopies(t *testing.T) {
	r := NewBoostResolver(nil, nil, 0, nil)
	cats := []domain.Category{domain.CategoryMuseum}

	first := r.Resolve(context.Background(), "Paris", cats)
	first[domain.CategoryMuseum] = 99

	second := r.Resolve(context.Background(), "paris ", cats)
	if second[domain.CategoryMuseum] != 1.16 {
		t.Fatalf("expected cached museum 1.16, got %v", second[domain.CategoryMuseum])
	}
}

func TestResolveAppliesAdvisorClampedAndIgnoresJunk(t *testing.T) {
	adv := &fakeAdvisor{out: map[string]any{
		"museum":  9.0,
		"park":    "not a number",
		"food":    "1.2",
		"nowhere": 1.3,
	}}
	r := NewBoostResolver(nil, adv, time.Second, nil)
	cats := []domain.Category{domain.CategoryMuseum, domain.CategoryPark, domain.CategoryFood}

	got := r.Resolve(context.Background(), "Springfield", cats)
	if got[domain.CategoryMuseum] != domain.MaxBoost {
		t.Fatalf("expected museum clamped to %v, got %v", domain.MaxBoost, got[domain.CategoryMuseum])
	}
	if got[domain.CategoryPark] != 1.0 {
		t.Fatalf("expected park heuristic 1.0, got %v", got[domain.CategoryPark])
	}
	if got[domain.CategoryFood] != 1.2 {
		t.Fatalf("expected food 1.2, got %v", got[domain.CategoryFood])
	}
	if _, ok := got["nowhere"]; ok {
		t.Fatalf("expected unknown category ignored, got %v", got)
	}

	r.Resolve(context.Background(), "Springfield", cats)
	if adv.calls != 1 {
		t.Fatalf("expected one advisor call, got %d", adv.calls)
	}
}

func TestResolveFallsBackOnAdvisorFailure(t *testing.T) {
	cats := []domain.Category{domain.CategoryPark, domain.CategoryMuseum}
	want := HeuristicBoosts("Bali", cats)

	for name, adv := range map[string]*fakeAdvisor{
		"error":   {err: errors.New("boom")},
		"timeout": {wait: true},
		"empty":   {out: map[string]any{}},
	} {
		r := NewBoostResolver(nil, adv, 20*time.Millisecond, nil)
		got := r.Resolve(context.Background(), "Bali", cats)
		for c, v := range want {
			if got[c] != v {
				t.Fatalf("%s: expected %s=%v, got %v", name, c, v, got[c])
			}
		}
	}
}

func TestBoostCacheKeyIsOrderInsensitive(t *testing.T) {
	a := BoostCacheKey(" Paris", []domain.Category{domain.CategoryPark, domain.CategoryFood, domain.CategoryPark})
	b := BoostCacheKey("paris", []domain.Category{domain.CategoryFood, domain.CategoryPark})
	if a != b || a != "paris|food,park" {
		t.Fatalf("expected paris|food,park for both, got %q and %q", a, b)
	}
}

func TestResolveConcurrentMissesShareOneAdvisorCall(t *testing.T) {
	adv := &fakeAdvisor{out: map[string]any{"museum": 1.3}, delay: 20 * time.Millisecond}
	r := NewBoostResolver(nil, adv, time.Second, nil)
	cats := []domain.Category{domain.CategoryMuseum, domain.CategoryPark}
	destinations := []string{"Springfield", "Shelbyville", "Ogdenville"}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		dest := destinations[i%len(destinations)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			got := r.Resolve(context.Background(), dest, cats)
			if got[domain.CategoryMuseum] != 1.3 {
				t.Errorf("%s: expected museum 1.3, got %v", dest, got[domain.CategoryMuseum])
			}
			got[domain.CategoryMuseum] = 0
		}()
	}
	close(start)
	wg.Wait()

	adv.mu.Lock()
	defer adv.mu.Unlock()
	for _, dest := range destinations {
		if adv.byDest[dest] != 1 {
			t.Fatalf("expected one advisor call for %s, got %d", dest, adv.byDest[dest])
		}
	}
}

func TestBoostCacheConcurrentAccess(t *testing.T) {
	c := NewBoostCache()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Put("paris|museum", domain.BoostTable{domain.CategoryMuseum: 1.16})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if table, ok := c.Get("paris|museum"); ok {
					table[domain.CategoryMuseum] = 0
				}
			}
		}()
	}
	wg.Wait()

	table, ok := c.Get("paris|museum")
	if !ok || table[domain.CategoryMuseum] != 1.16 {
		t.Fatalf("expected cached museum 1.16, got %v (ok=%v)", table, ok)
	}
}

func TestResolveIgnoresCallerCancellation(t *testing.T) {
	adv := &fakeAdvisor{out: map[string]any{"park": 1.25}}
	r := NewBoostResolver(nil, adv, time.Second, nil)
	cats := []domain.Category{domain.CategoryPark}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := r.Resolve(ctx, "Springfield", cats)
	if got[domain.CategoryPark] != 1.25 {
		t.Fatalf("expected advisor park 1.25 despite cancelled caller, got %v", got[domain.CategoryPark])
	}

	again := r.Resolve(context.Background(), "Springfield", cats)
	if again[domain.CategoryPark] != 1.25 {
		t.Fatalf("expected cached park 1.25, got %v", again[domain.CategoryPark])
	}
}
