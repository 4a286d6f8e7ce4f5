package places

import (
	"context"
	"encoding/json"
	"fmt"
	"group-trip-planner/internal/adapters/httpclient"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/platform/logger"
	"group-trip-planner/internal/platform/obs"
	"group-trip-planner/internal/ports"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

type placeType struct {
	name     string
	category domain.Category
	duration int
}

// Searched in this order; results are merged in the same order before sorting.
var placeTypes = []placeType{
	{"restaurant", domain.CategoryFood, 90},
	{"bar", domain.CategoryBar, 120},
	{"museum", domain.CategoryMuseum, 150},
	{"tourist_attraction", domain.CategoryLandmark, 120},
	{"park", domain.CategoryPark, 90},
	{"spa", domain.CategorySpa, 90},
}

var fastFoodKeywords = []string{
	"mcdonald", "burger king", "kfc", "taco bell", "wendy's", "popeyes",
	"subway", "domino", "pizza hut", "chipotle", "five guys", "in-n-out",
	"shake shack", "dunkin", "starbucks", "fast food",
}

var fastFoodTypes = []string{"meal_takeaway", "meal_delivery", "convenience_store", "gas_station"}

var freeNameHints = []string{
	"park", "beach", "trail", "hike", "lookout", "viewpoint",
	"promenade", "boardwalk", "waterfall", "garden",
}

const defaultRating = 4.2

type GooglePlacesConfig struct {
	APIKey            string
	BaseURL           string
	RadiusMeters      int
	MaxResultsPerType int
	MaxTotalResults   int
	Timeout           time.Duration
}

// GooglePlaces searches the Places nearby-search endpoint once per place type
// and merges the results into a single activity list.
type GooglePlaces struct {
	cfg   GooglePlacesConfig
	http  *httpclient.Client
	cache ports.ActivityCache
	log   *logger.Logger
}

func NewGooglePlaces(cfg GooglePlacesConfig, cache ports.ActivityCache, log *logger.Logger) *GooglePlaces {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.RadiusMeters <= 0 {
		cfg.RadiusMeters = 5000
	}
	if cfg.MaxResultsPerType <= 0 {
		cfg.MaxResultsPerType = 8
	}
	if cfg.MaxTotalResults <= 0 {
		cfg.MaxTotalResults = 40
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &GooglePlaces{
		cfg:   cfg,
		http:  httpclient.New(cfg.Timeout, nil),
		cache: cache,
		log:   logger.OrNop(log),
	}
}

// CacheKey identifies an activity list by destination and rounded coordinates.
func CacheKey(destination string, lat, lng float64) string {
	return fmt.Sprintf("%s:%.3f:%.3f", strings.ToLower(strings.TrimSpace(destination)), lat, lng)
}

func (g *GooglePlaces) FetchActivities(ctx context.Context, destination string, lat, lng float64) (acts []domain.Activity, err error) {
	defer obs.Time(ctx, g.log, "places.fetch_activities")(&err)

	key := CacheKey(destination, lat, lng)
	if g.cache != nil {
		cached, ok, cerr := g.cache.Get(ctx, key)
		if cerr != nil {
			g.log.Warn("activity cache read failed", "key", key, "err", cerr)
		} else if ok {
			return cached, nil
		}
	}

	perType := make([][]placeHit, len(placeTypes))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(3)
	for i, pt := range placeTypes {
		grp.Go(func() error {
			found, err := g.searchType(gctx, pt, lat, lng)
			if err != nil {
				return fmt.Errorf("search %s: %w", pt.name, err)
			}
			perType[i] = found
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("places: %w", err)
	}

	acts = mergeResults(perType, g.cfg.MaxTotalResults)

	if g.cache != nil {
		if cerr := g.cache.Set(ctx, key, acts); cerr != nil {
			g.log.Warn("activity cache write failed", "key", key, "err", cerr)
		}
	}
	return acts, nil
}

type nearbyResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []nearbyPlace `json:"results"`
}

type nearbyPlace struct {
	PlaceID    string          `json:"place_id"`
	Name       string          `json:"name"`
	Rating     *float64        `json:"rating"`
	PriceLevel json.RawMessage `json:"price_level"`
	Types      []string        `json:"types"`
	Geometry   struct {
		Location *struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

type placeHit struct {
	id       string
	activity domain.Activity
}

func (g *GooglePlaces) searchType(ctx context.Context, pt placeType, lat, lng float64) ([]placeHit, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", strconv.Itoa(g.cfg.RadiusMeters))
	q.Set("type", pt.name)
	q.Set("key", g.cfg.APIKey)

	req, err := g.http.NewRequest(ctx, http.MethodGet, g.cfg.BaseURL+"/nearbysearch/json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode nearbysearch response: %w", err)
	}
	if body.Status != "OK" && body.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearbysearch status %s: %s", body.Status, body.ErrorMessage)
	}

	results := body.Results
	if len(results) > g.cfg.MaxResultsPerType {
		results = results[:g.cfg.MaxResultsPerType]
	}

	out := make([]placeHit, 0, len(results))
	for _, p := range results {
		if p.PlaceID == "" || p.Name == "" || p.Geometry.Location == nil {
			continue
		}
		if pt.name == "restaurant" && isFastFood(p.Name, p.Types) {
			continue
		}
		out = append(out, placeHit{id: p.PlaceID, activity: toActivity(p, pt)})
	}
	return out, nil
}

func toActivity(p nearbyPlace, pt placeType) domain.Activity {
	rating := defaultRating
	if p.Rating != nil {
		rating = *p.Rating
	}

	price, verified := parsePriceLevel(p.PriceLevel)
	confidence := "verified"
	if !verified {
		price = inferPriceLevel(pt.category, p.Name)
		confidence = "inferred"
	}

	loc := p.Geometry.Location
	return domain.Activity{
		Name:            p.Name,
		Category:        pt.category,
		Rating:          rating,
		PriceLevel:      price,
		Lat:             loc.Lat,
		Lng:             loc.Lng,
		DurationMinutes: pt.duration,
		ActivityURL:     placeURL(loc.Lat, loc.Lng, p.PlaceID),
		EstimatedPrice:  domain.PriceLabel(domain.PriceLevelValue(price)),
		PriceConfidence: confidence,
	}
}

func placeURL(lat, lng float64, placeID string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("query_place_id", placeID)
	return "https://www.google.com/maps/search/?" + q.Encode()
}

// parsePriceLevel accepts an integer or a numeric string and clamps it.
func parsePriceLevel(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return domain.ClampPriceLevel(int(n)), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return domain.ClampPriceLevel(v), true
		}
	}
	return 0, false
}

func inferPriceLevel(category domain.Category, name string) int {
	switch category {
	case domain.CategoryPark, domain.CategoryBeach, domain.CategoryHike,
		domain.CategoryLandmark, domain.CategoryRelaxation:
		return 0
	}

	lower := strings.ToLower(name)
	for _, hint := range freeNameHints {
		if strings.Contains(lower, hint) {
			return 0
		}
	}

	switch category {
	case domain.CategoryMuseum, domain.CategoryCulture:
		return 1
	case domain.CategoryFood, domain.CategoryRestaurant:
		return 2
	case domain.CategoryBar, domain.CategoryNightclub, domain.CategorySpa:
		return 3
	}
	return 1
}

func isFastFood(name string, types []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range fastFoodKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, t := range types {
		if slices.Contains(fastFoodTypes, t) {
			return true
		}
	}
	return false
}

// mergeResults dedupes by place id keeping the higher rating, then returns the
// best-rated activities up to limit.
func mergeResults(perType [][]placeHit, limit int) []domain.Activity {
	index := make(map[string]int)
	var merged []domain.Activity

	for _, hits := range perType {
		for _, h := range hits {
			if i, ok := index[h.id]; ok {
				if h.activity.Rating > merged[i].Rating {
					merged[i] = h.activity
				}
				continue
			}
			index[h.id] = len(merged)
			merged = append(merged, h.activity)
		}
	}

	slices.SortStableFunc(merged, func(a, b domain.Activity) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		}
		return 0
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
