package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"group-trip-planner/internal/domain"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLTripRepository implements ports.TripRepository on Postgres or SQLite.
// Queries are written with ? placeholders and rebound per driver.
type SQLTripRepository struct {
	DB *sqlx.DB
}

func NewSQLTripRepository(db *sqlx.DB) *SQLTripRepository {
	return &SQLTripRepository{DB: db}
}

type tripRow struct {
	ID                   string  `db:"id"`
	Destination          string  `db:"destination"`
	StartDate            string  `db:"start_date"`
	EndDate              string  `db:"end_date"`
	DayCount             int     `db:"day_count"`
	AccommodationAddress string  `db:"accommodation_address"`
	AccommodationLat     float64 `db:"accommodation_lat"`
	AccommodationLng     float64 `db:"accommodation_lng"`
	OwnerToken           string  `db:"owner_token"`
	JoinCode             string  `db:"join_code"`
	CreatedAt            string  `db:"created_at"`
}

func (r tripRow) toDomain() (domain.Trip, error) {
	start, err := time.Parse(domain.DateLayout, r.StartDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("parse start_date: %w", err)
	}
	end, err := time.Parse(domain.DateLayout, r.EndDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("parse end_date: %w", err)
	}
	created, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("parse created_at: %w", err)
	}
	return domain.Trip{
		ID:                   r.ID,
		Destination:          r.Destination,
		StartDate:            start,
		EndDate:              end,
		AccommodationAddress: r.AccommodationAddress,
		Accommodation:        domain.Coordinates{Lat: r.AccommodationLat, Lng: r.AccommodationLng},
		CreatedAt:            created,
	}, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func (s *SQLTripRepository) CreateTrip(ctx context.Context, trip domain.Trip, access domain.TripAccess) error {
	if s.DB == nil {
		return errors.New("create trip: DB is nil")
	}

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create trip: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
	INSERT INTO trips (
		id, destination, start_date, end_date, day_count,
		accommodation_address, accommodation_lat, accommodation_lng,
		owner_token, join_code, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`),
		trip.ID,
		trip.Destination,
		trip.StartDate.Format(domain.DateLayout),
		trip.EndDate.Format(domain.DateLayout),
		trip.DayCount(),
		trip.AccommodationAddress,
		trip.Accommodation.Lat,
		trip.Accommodation.Lng,
		access.OwnerToken,
		access.JoinCode,
		formatTimestamp(trip.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create trip: insert trip: %w", err)
	}

	if len(trip.Participants) > 0 {
		stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
		INSERT INTO participants (trip_id, position, name, payload)
		VALUES (?, ?, ?, ?);
		`))
		if err != nil {
			return fmt.Errorf("create trip: db prepare: %w", err)
		}
		defer stmt.Close()

		for i, p := range trip.Participants {
			payload, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("create trip: encode participant %d: %w", i, err)
			}
			if _, err := stmt.ExecContext(ctx, trip.ID, i, p.Name, string(payload)); err != nil {
				return fmt.Errorf("create trip: insert participant %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create trip: commit: %w", err)
	}
	return nil
}

func (s *SQLTripRepository) GetTrip(ctx context.Context, tripID string) (domain.Trip, error) {
	var row tripRow
	err := s.DB.GetContext(ctx, &row, s.DB.Rebind(`SELECT * FROM trips WHERE id = ?;`), tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Trip{}, fmt.Errorf("trip %q: %w", tripID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("get trip: query trips table: %w", err)
	}

	trip, err := row.toDomain()
	if err != nil {
		return domain.Trip{}, fmt.Errorf("get trip %q: %w", tripID, err)
	}

	var payloads []string
	err = s.DB.SelectContext(ctx, &payloads, s.DB.Rebind(`
	SELECT payload FROM participants WHERE trip_id = ? ORDER BY position;
	`), tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("get trip: query participants table: %w", err)
	}

	trip.Participants = make([]domain.Participant, 0, len(payloads))
	for i, raw := range payloads {
		var p domain.Participant
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return domain.Trip{}, fmt.Errorf("get trip: decode participant %d: %w", i, err)
		}
		trip.Participants = append(trip.Participants, p)
	}
	return trip, nil
}

func (s *SQLTripRepository) GetTripAccess(ctx context.Context, tripID string) (domain.TripAccess, error) {
	var row struct {
		OwnerToken string `db:"owner_token"`
		JoinCode   string `db:"join_code"`
	}
	err := s.DB.GetContext(ctx, &row, s.DB.Rebind(`
	SELECT owner_token, join_code FROM trips WHERE id = ?;
	`), tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TripAccess{}, fmt.Errorf("trip %q: %w", tripID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.TripAccess{}, fmt.Errorf("get trip access: %w", err)
	}
	return domain.TripAccess{OwnerToken: row.OwnerToken, JoinCode: row.JoinCode}, nil
}

func (s *SQLTripRepository) AddParticipant(ctx context.Context, tripID string, p domain.Participant) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("add participant: encode: %w", err)
	}

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add participant: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(*) FROM trips WHERE id = ?;`), tripID)
	if err != nil {
		return fmt.Errorf("add participant: lookup trip: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("trip %q: %w", tripID, domain.ErrNotFound)
	}

	var next int
	err = tx.GetContext(ctx, &next, tx.Rebind(`
	SELECT COALESCE(MAX(position) + 1, 0) FROM participants WHERE trip_id = ?;
	`), tripID)
	if err != nil {
		return fmt.Errorf("add participant: next position: %w", err)
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`
	INSERT INTO participants (trip_id, position, name, payload)
	VALUES (?, ?, ?, ?);
	`), tripID, next, p.Name, string(payload))
	if err != nil {
		return fmt.Errorf("add participant: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add participant: commit: %w", err)
	}
	return nil
}

func (s *SQLTripRepository) SaveItinerary(ctx context.Context, result domain.ItineraryResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("save itinerary: encode: %w", err)
	}
	_, err = s.DB.ExecContext(ctx, s.DB.Rebind(`
	INSERT INTO itineraries (trip_id, payload, generated_at)
	VALUES (?, ?, ?)
	ON CONFLICT (trip_id) DO UPDATE
	SET payload = EXCLUDED.payload,
		generated_at = EXCLUDED.generated_at;
	`), result.TripID, string(payload), formatTimestamp(result.GeneratedAt))
	if err != nil {
		return fmt.Errorf("save itinerary trip=%q: %w", result.TripID, err)
	}
	return nil
}

func (s *SQLTripRepository) GetItinerary(ctx context.Context, tripID string) (domain.ItineraryResult, error) {
	var result domain.ItineraryResult
	if err := s.getPayload(ctx, "itineraries", tripID, &result); err != nil {
		return domain.ItineraryResult{}, fmt.Errorf("get itinerary: %w", err)
	}
	return result, nil
}

func (s *SQLTripRepository) SaveDraftPlan(ctx context.Context, plan domain.DraftPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("save draft plan: encode: %w", err)
	}

	var shareToken sql.NullString
	if plan.Metadata.SharedToken != "" {
		shareToken = sql.NullString{String: plan.Metadata.SharedToken, Valid: true}
	}

	_, err = s.DB.ExecContext(ctx, s.DB.Rebind(`
	INSERT INTO draft_plans (trip_id, payload, selection_count, share_token, shared_count, saved_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (trip_id) DO UPDATE
	SET payload = EXCLUDED.payload,
		selection_count = EXCLUDED.selection_count,
		share_token = EXCLUDED.share_token,
		shared_count = EXCLUDED.shared_count,
		saved_at = EXCLUDED.saved_at;
	`),
		plan.TripID,
		string(payload),
		len(plan.Selections),
		shareToken,
		plan.Metadata.SharedCount,
		formatTimestamp(plan.SavedAt),
	)
	if err != nil {
		return fmt.Errorf("save draft plan trip=%q: %w", plan.TripID, err)
	}
	return nil
}

func (s *SQLTripRepository) GetDraftPlan(ctx context.Context, tripID string) (domain.DraftPlan, error) {
	var plan domain.DraftPlan
	if err := s.getPayload(ctx, "draft_plans", tripID, &plan); err != nil {
		return domain.DraftPlan{}, fmt.Errorf("get draft plan: %w", err)
	}
	return plan, nil
}

func (s *SQLTripRepository) GetDraftPlanByShareToken(ctx context.Context, token string) (domain.DraftPlan, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.DraftPlan{}, fmt.Errorf("shared draft: %w", domain.ErrNotFound)
	}

	var raw string
	err := s.DB.GetContext(ctx, &raw, s.DB.Rebind(`
	SELECT payload FROM draft_plans WHERE share_token = ?;
	`), token)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DraftPlan{}, fmt.Errorf("shared draft: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.DraftPlan{}, fmt.Errorf("get shared draft: %w", err)
	}

	var plan domain.DraftPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return domain.DraftPlan{}, fmt.Errorf("get shared draft: decode: %w", err)
	}
	return plan, nil
}

func (s *SQLTripRepository) SaveSettings(
	ctx context.Context,
	tripID string,
	settings domain.PlanningSettings,
	updatedAt time.Time,
) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("save settings: encode: %w", err)
	}
	_, err = s.DB.ExecContext(ctx, s.DB.Rebind(`
	INSERT INTO planning_settings (trip_id, payload, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT (trip_id) DO UPDATE
	SET payload = EXCLUDED.payload,
		updated_at = EXCLUDED.updated_at;
	`), tripID, string(payload), formatTimestamp(updatedAt))
	if err != nil {
		return fmt.Errorf("save settings trip=%q: %w", tripID, err)
	}
	return nil
}

func (s *SQLTripRepository) GetSettings(ctx context.Context, tripID string) (domain.PlanningSettings, error) {
	var settings domain.PlanningSettings
	if err := s.getPayload(ctx, "planning_settings", tripID, &settings); err != nil {
		return domain.PlanningSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

func (s *SQLTripRepository) AnalyticsSummary(ctx context.Context) (domain.AnalyticsSummary, error) {
	var out domain.AnalyticsSummary
	err := s.DB.GetContext(ctx, &out, `
	SELECT
		(SELECT COUNT(*) FROM trips) AS total_trips,
		(SELECT COUNT(DISTINCT trip_id) FROM draft_plans) AS trips_with_saved_draft,
		(SELECT COUNT(*) FROM draft_plans) AS saved_drafts,
		(SELECT COUNT(*)
			FROM draft_plans d
			JOIN trips t ON t.id = d.trip_id
			WHERE d.selection_count >= t.day_count * 3) AS saved_drafts_full_slots,
		(SELECT COUNT(*) FROM draft_plans WHERE shared_count > 0) AS saved_drafts_shared;
	`)
	if err != nil {
		return domain.AnalyticsSummary{}, fmt.Errorf("analytics summary: %w", err)
	}
	return out, nil
}

// getPayload decodes the JSON payload column of a per-trip table.
func (s *SQLTripRepository) getPayload(ctx context.Context, table, tripID string, dst any) error {
	var raw string
	err := s.DB.GetContext(ctx, &raw, s.DB.Rebind(`SELECT payload FROM `+table+` WHERE trip_id = ?;`), tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s for trip %q: %w", table, tripID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s payload: %w", table, err)
	}
	return nil
}
