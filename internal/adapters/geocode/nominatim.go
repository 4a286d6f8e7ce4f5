package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"group-trip-planner/internal/adapters/httpclient"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/platform/logger"
	"group-trip-planner/internal/platform/obs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL    = "https://nominatim.openstreetmap.org"
	defaultConfidence = 0.4
	maxLimit          = 10
)

// Nominatim resolves free-text addresses with the OpenStreetMap search API.
type Nominatim struct {
	baseURL string
	http    *httpclient.Client
	log     *logger.Logger
}

func NewNominatim(baseURL, userAgent string, timeout time.Duration, log *logger.Logger) *Nominatim {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	return &Nominatim{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.New(timeout, map[string]string{"User-Agent": userAgent}),
		log:     logger.OrNop(log),
	}
}

// WithRetryPolicy is exposed for tests that should not wait on real backoff.
func (n *Nominatim) WithRetryPolicy(maxAttempts int, backoff time.Duration) *Nominatim {
	n.http.WithRetryPolicy(maxAttempts, backoff)
	return n
}

type searchResult struct {
	DisplayName string          `json:"display_name"`
	Lat         string          `json:"lat"`
	Lon         string          `json:"lon"`
	Importance  json.RawMessage `json:"importance"`
}

func (n *Nominatim) Geocode(ctx context.Context, query string, limit int) (_ []domain.GeocodeCandidate, err error) {
	defer obs.Time(ctx, n.log, "nominatim.Geocode")(&err)

	limit = max(1, min(limit, maxLimit))
	endpoint := n.baseURL + "/search"

	resp, err := n.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := n.http.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("format", "jsonv2")
		q.Set("addressdetails", "1")
		q.Set("dedupe", "1")
		q.Set("limit", strconv.Itoa(limit))
		q.Set("q", query)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(decoded) > limit {
		decoded = decoded[:limit]
	}

	out := make([]domain.GeocodeCandidate, 0, len(decoded))
	for _, r := range decoded {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lng, errLng := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLng != nil {
			continue
		}
		address := r.DisplayName
		if address == "" {
			address = query
		}
		out = append(out, domain.GeocodeCandidate{
			Address:    address,
			Lat:        lat,
			Lng:        lng,
			Provider:   "nominatim",
			Confidence: importance(r.Importance),
		})
	}
	return out, nil
}

// importance accepts a number or numeric string and clamps it to [0, 1].
func importance(raw json.RawMessage) float64 {
	v := defaultConfidence
	var n float64
	var s string
	switch {
	case json.Unmarshal(raw, &n) == nil:
		v = n
	case json.Unmarshal(raw, &s) == nil:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			v = f
		}
	}
	return max(0, min(v, 1))
}
