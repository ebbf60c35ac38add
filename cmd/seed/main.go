package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"socialnet/config"
	"socialnet/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@socialnet.local"
	password := "password123"
	name := "Site Admin"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	// Seeded admin is pre-confirmed so it can log in without the OTP flow.
	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, first_name, last_name, email, password, role, confirm_email)
		VALUES ($1, $2, $3, $4, $5, 'ADMIN', TRUE)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name, role='ADMIN', confirm_email=TRUE
		RETURNING id
	`, name, "Site", "Admin", email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)
}
