package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration read from the environment.
type Config struct {
	Port     string
	LogMode  string
	Database DatabaseConfig
	RedisURL string

	Places    PlacesConfig
	LLM       LLMConfig
	Planner   PlannerConfig
	Geocoding GeocodingConfig

	CORSAllowOrigins []string
	FrontendBaseURL  string
}

type DatabaseConfig struct {
	URL        string
	SQLitePath string
}

type PlacesConfig struct {
	APIKey             string
	RadiusMeters       int
	MaxResultsPerType  int
	MaxTotalResults    int
	Timeout            time.Duration
	ActivityCacheTTL   time.Duration
	CacheCleanupPeriod time.Duration
}

type LLMConfig struct {
	APIKey               string
	Model                string
	NarrativeTemperature float64
	AdvisorTimeout       time.Duration
	NarrativeTimeout     time.Duration
}

type PlannerConfig struct {
	DraftSlotChoices int
}

type GeocodingConfig struct {
	BaseURL    string
	MaxResults int
	UserAgent  string
}

// LoadDotEnv reads a .env file when present. A missing file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load reads the typed configuration, applying defaults for anything unset.
func Load() Config {
	return Config{
		Port:    Get("PORT", "8080"),
		LogMode: Get("LOG_MODE", "dev"),
		Database: DatabaseConfig{
			URL:        Get("DATABASE_URL", ""),
			SQLitePath: Get("DB_PATH", "data/trips.db"),
		},
		RedisURL: Get("REDIS_ADDR", ""),
		Places: PlacesConfig{
			APIKey:             Get("GOOGLE_PLACES_API_KEY", ""),
			RadiusMeters:       Int("GOOGLE_PLACES_RADIUS_METERS", 6000),
			MaxResultsPerType:  Int("GOOGLE_PLACES_MAX_RESULTS_PER_TYPE", 8),
			MaxTotalResults:    Int("GOOGLE_PLACES_MAX_TOTAL_RESULTS", 40),
			Timeout:            Duration("GOOGLE_PLACES_TIMEOUT", 6*time.Second),
			ActivityCacheTTL:   Duration("ACTIVITY_CACHE_TTL", 6*time.Hour),
			CacheCleanupPeriod: Duration("ACTIVITY_CACHE_CLEANUP", 30*time.Minute),
		},
		LLM: LLMConfig{
			APIKey:               Get("GEMINI_API_KEY", ""),
			Model:                Get("GEMINI_MODEL", "gemini-2.5-flash-lite"),
			NarrativeTemperature: Float("GEMINI_NARRATIVE_TEMPERATURE", 0.7),
			AdvisorTimeout:       Duration("ADVISOR_TIMEOUT", 8*time.Second),
			NarrativeTimeout:     Duration("NARRATIVE_TIMEOUT", 10*time.Second),
		},
		Planner: PlannerConfig{
			DraftSlotChoices: Int("DRAFT_SLOT_CHOICES", 4),
		},
		Geocoding: GeocodingConfig{
			BaseURL:    Get("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
			MaxResults: Int("GEOCODE_MAX_RESULTS", 6),
			UserAgent:  Get("GEOCODE_USER_AGENT", "group-trip-planner/1.0"),
		},
		CORSAllowOrigins: List("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		FrontendBaseURL:  strings.TrimRight(Get("FRONTEND_BASE_URL", "http://localhost:3000"), "/"),
	}
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func Int(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func Float(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %v", key, v, fallback)
		return fallback
	}
	return f
}

// Duration accepts Go duration strings ("6s", "6h") or a bare number of seconds.
func Duration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	log.Printf("config: %s=%q is not a duration, using %s", key, v, fallback)
	return fallback
}

// List splits a comma separated value, dropping blanks.
func List(key string, fallback []string) []string {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
