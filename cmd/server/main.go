package main

import (
	"context"
	"errors"
	"group-trip-planner/internal/adapters/cache"
	"group-trip-planner/internal/adapters/catalog"
	"group-trip-planner/internal/adapters/geocode"
	"group-trip-planner/internal/adapters/llm"
	"group-trip-planner/internal/adapters/places"
	"group-trip-planner/internal/adapters/repositories"
	"group-trip-planner/internal/api"
	"group-trip-planner/internal/api/handlers"
	"group-trip-planner/internal/config"
	"group-trip-planner/internal/platform/db"
	"group-trip-planner/internal/platform/logger"
	"group-trip-planner/internal/ports"
	"group-trip-planner/internal/services"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis, Places, Gemini) behind ports and
// starts the HTTP server.
func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(cfg.Database.URL, cfg.Database.SQLitePath)
	if err != nil {
		logg.Fatal("open database", "err", err)
	}
	defer conn.Close()

	// Schema creation is idempotent, so local runs need no separate migrate step.
	if err := repositories.InitSchema(ctx, conn); err != nil {
		logg.Fatal("init schema", "err", err)
	}
	logg.Info("database ready", "driver", conn.DriverName())

	activityCache := newActivityCache(ctx, cfg, logg)

	var source ports.ActivitySource
	if cfg.Places.APIKey != "" {
		source = places.NewGooglePlaces(places.GooglePlacesConfig{
			APIKey:            cfg.Places.APIKey,
			RadiusMeters:      cfg.Places.RadiusMeters,
			MaxResultsPerType: cfg.Places.MaxResultsPerType,
			MaxTotalResults:   cfg.Places.MaxTotalResults,
			Timeout:           cfg.Places.Timeout,
		}, activityCache, logg.With("component", "places"))
	} else {
		logg.Warn("GOOGLE_PLACES_API_KEY not set; using catalog and synthetic activities")
	}

	cat, err := catalog.Default()
	if err != nil {
		logg.Fatal("load activity catalog", "err", err)
	}

	var (
		advisor  ports.BoostAdvisor
		narrator ports.Narrator
	)
	if cfg.LLM.APIKey != "" {
		gem, err := llm.NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			logg.Fatal("init gemini", "err", err)
		}
		assistant := llm.NewAssistant(gem, logg.With("component", "llm"))
		assistant.NarrativeTemperature = float32(cfg.LLM.NarrativeTemperature)
		advisor, narrator = assistant, assistant
	} else {
		logg.Warn("GEMINI_API_KEY not set; using heuristic boosts and template explanations")
	}

	planner := services.NewPlanner(services.PlannerConfig{
		Source:            source,
		Catalog:           cat,
		Boosts:            services.NewBoostResolver(services.NewBoostCache(), advisor, cfg.LLM.AdvisorTimeout, logg),
		Narrator:          narrator,
		NarrativeTimeout:  cfg.LLM.NarrativeTimeout,
		CandidatesPerSlot: cfg.Planner.DraftSlotChoices,
		Log:               logg,
	})

	router := api.NewRouter(&handlers.Handler{
		Repo:              repositories.NewSQLTripRepository(conn),
		Planner:           planner,
		Geocoder:          geocode.NewNominatim(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent, 6*time.Second, logg),
		GeocodeCache:      cache.NewSQLGeocodeCache(conn, logg),
		GeocodeMaxResults: cfg.Geocoding.MaxResults,
		FrontendBaseURL:   cfg.FrontendBaseURL,
		Log:               logg,
	}, cfg.CORSAllowOrigins)

	// Timeouts leave room for cold-cache generation (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logg.Warn("shutdown", "err", err)
		}
	}()

	logg.Info("server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Fatal("serve", "err", err)
	}
}

// newActivityCache prefers Redis so replicas share Places results, and falls
// back to an in-process cache when Redis is unset or unreachable.
func newActivityCache(ctx context.Context, cfg config.Config, logg *logger.Logger) ports.ActivityCache {
	if cfg.RedisURL != "" {
		rdb, err := cache.DialRedis(ctx, cfg.RedisURL)
		if err == nil {
			logg.Info("activity cache: redis", "addr", cfg.RedisURL)
			return cache.NewRedisActivityCache(rdb, cfg.Places.ActivityCacheTTL)
		}
		logg.Warn("redis unavailable; using in-memory activity cache", "err", err)
	}
	return cache.NewMemoryActivityCache(cfg.Places.ActivityCacheTTL, cfg.Places.CacheCleanupPeriod)
}
