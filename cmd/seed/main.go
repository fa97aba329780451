package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/vidtube/config"
	"github.com/oksasatya/vidtube/pkg/helpers"
)

// seeds a demo channel with one published video and a welcome tweet
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@vidtube.local"
	username := "demochannel"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, fullname, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET fullname=EXCLUDED.fullname
		RETURNING id
	`, username, email, "Demo Channel", hash, "https://placehold.co/128x128").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s email=%s password=%s\n", id, username, email, password)

	var videoID string
	err = db.QueryRow(`
		INSERT INTO videos (owner_id, title, description, video_url, video_asset_id, thumbnail_url, thumbnail_asset_id, duration)
		SELECT $1::uuid, $2::text, $3::text, $4::text, '', $5::text, '', $6::double precision
		WHERE NOT EXISTS (SELECT 1 FROM videos WHERE owner_id = $1::uuid AND title = $2::text)
		RETURNING id
	`, id, "Welcome to VidTube", "A short tour of the channel.",
		"https://placehold.co/video.mp4", "https://placehold.co/640x360", 42.0).Scan(&videoID)
	switch {
	case err == sql.ErrNoRows:
		fmt.Println("demo video already present")
	case err != nil:
		log.Fatalf("failed to seed video: %v", err)
	default:
		fmt.Printf("seeded video: id=%s\n", videoID)
	}

	if _, err := db.Exec(`
		INSERT INTO tweets (owner_id, content)
		SELECT $1::uuid, $2::text
		WHERE NOT EXISTS (SELECT 1 FROM tweets WHERE owner_id = $1::uuid)
	`, id, "First post on the demo channel"); err != nil {
		log.Fatalf("failed to seed tweet: %v", err)
	}
	fmt.Println("seeded tweet (if not already)")
}
