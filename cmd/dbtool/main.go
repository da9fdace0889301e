package main

import (
	"context"
	"database/sql"
	"delivery-schedule-service/internal/adapters/repositories"
	"delivery-schedule-service/internal/config"
	"delivery-schedule-service/internal/platform/db"
	"flag"
	"log"

	"github.com/joho/godotenv"
)

// dbtool creates the schema and upserts the seed users for the configured database.
func main() {
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding users")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dialect, err := repositories.DialectFor(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), conn, dialect, cfg.SeedPath, *schemaOnly); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, seedPath string, schemaOnly bool) error {
	log.Printf("Initializing database schema driver=%s...", dialect.Name)
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		return err
	}
	log.Println("Schema ready.")

	if schemaOnly {
		return nil
	}

	log.Printf("Seeding users from %s...", seedPath)
	if err := repositories.SeedUsersFromJSON(ctx, conn, dialect, seedPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}
