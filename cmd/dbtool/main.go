package main

import (
	"context"
	"group-trip-planner/internal/adapters/repositories"
	"group-trip-planner/internal/config"
	"group-trip-planner/internal/platform/db"
	"log"
)

// dbtool creates the schema on the configured database (DATABASE_URL or
// DB_PATH) without starting the server.
func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	conn, err := db.Open(cfg.Database.URL, cfg.Database.SQLitePath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Printf("Initializing %s database schema...", conn.DriverName())
	if err := repositories.InitSchema(context.Background(), conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
