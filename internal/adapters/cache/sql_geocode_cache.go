package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/platform/logger"
	"group-trip-planner/internal/platform/obs"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLGeocodeCache is a SQL-backed cache mapping address queries to geocode
// candidates.
type SQLGeocodeCache struct {
	DB  *sqlx.DB
	Log *logger.Logger
	Now func() time.Time
}

func NewSQLGeocodeCache(db *sqlx.DB, log *logger.Logger) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, Log: logger.OrNop(log), Now: time.Now}
}

// NormalizeQuery is the cache key for a free-text address query.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

// Fetch cached candidates for query.
func (s *SQLGeocodeCache) Get(
	ctx context.Context,
	query string,
) (_ []domain.GeocodeCandidate, _ bool, err error) {
	defer obs.Time(ctx, s.Log, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("geocode cache: db is nil")
	}

	key := NormalizeQuery(query)
	if key == "" {
		return nil, false, nil
	}

	var raw string
	err = s.DB.GetContext(ctx, &raw, s.DB.Rebind(`
	SELECT payload
	FROM geocode_cache
	WHERE query = ?;
	`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	var out []domain.GeocodeCandidate
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, false, fmt.Errorf("get geocode cache: decode payload: %w", err)
	}
	return out, true, nil
}

// Store the candidates for query in the cache.
func (s *SQLGeocodeCache) Put(ctx context.Context, query string, results []domain.GeocodeCandidate) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	key := NormalizeQuery(query)
	if key == "" {
		return fmt.Errorf("insert geocode cache: empty query key")
	}
	if results == nil {
		results = []domain.GeocodeCandidate{}
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, s.DB.Rebind(`
	INSERT INTO geocode_cache (query, payload, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT (query) DO UPDATE
	SET payload = EXCLUDED.payload,
		updated_at = EXCLUDED.updated_at;
	`), key, string(payload), s.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert geocode cache query=%q: %w", key, err)
	}

	return nil
}
