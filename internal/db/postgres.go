package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"halo-backend/internal/analysis"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates the tables and seeds the allergen vocabulary.
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	usersSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255),
			google_id VARCHAR(255) UNIQUE,
			name VARCHAR(255),
			email_verified BOOLEAN NOT NULL DEFAULT FALSE,
			profile_picture VARCHAR(500),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := pool.Exec(ctx, usersSQL); err != nil {
		return err
	}

	allergensSQL := `
		CREATE TABLE IF NOT EXISTS allergens (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL
		)
	`
	if _, err := pool.Exec(ctx, allergensSQL); err != nil {
		return err
	}

	userAllergiesSQL := `
		CREATE TABLE IF NOT EXISTS user_allergies (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			allergen_id INTEGER NOT NULL REFERENCES allergens(id),
			severity INTEGER NOT NULL CHECK (severity >= 1 AND severity <= 3),
			UNIQUE (user_id, allergen_id)
		)
	`
	if _, err := pool.Exec(ctx, userAllergiesSQL); err != nil {
		return err
	}

	menuUploadsSQL := `
		CREATE TABLE IF NOT EXISTS menu_uploads (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			upload_name VARCHAR(255) NOT NULL,
			analysis_result JSONB NOT NULL,
			image_key VARCHAR(500),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := pool.Exec(ctx, menuUploadsSQL); err != nil {
		return err
	}

	if err := seedAllergens(ctx, pool); err != nil {
		return err
	}

	log.Println("Schema initialized")
	return nil
}

func seedAllergens(ctx context.Context, pool *pgxpool.Pool) error {
	for _, name := range analysis.AllergenVocabulary {
		_, err := pool.Exec(ctx, `
			INSERT INTO allergens (name)
			VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, name)
		if err != nil {
			return err
		}
	}
	return nil
}
