package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/muyik/smartschool/config"
	"github.com/muyik/smartschool/pkg/helpers"
)

// Seeds the base reference data and one admin account for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	genderIDs := map[string]string{}
	for _, name := range []string{"Male", "Female"} {
		var id string
		err := db.QueryRow(`
			SELECT id FROM genders WHERE gender_name = $1 AND deleted_at IS NULL
		`, name).Scan(&id)
		if err == sql.ErrNoRows {
			err = db.QueryRow(`
				INSERT INTO genders (gender_name) VALUES ($1) RETURNING id
			`, name).Scan(&id)
		}
		if err != nil {
			log.Fatalf("failed to seed gender %s: %v", name, err)
		}
		genderIDs[name] = id
	}
	fmt.Printf("genders ensured: male=%s female=%s\n", genderIDs["Male"], genderIDs["Female"])

	var classID string
	err = db.QueryRow(`
		SELECT id FROM school_classes WHERE class_name = $1 AND deleted_at IS NULL
	`, "Class 1A").Scan(&classID)
	if err == sql.ErrNoRows {
		err = db.QueryRow(`
			INSERT INTO school_classes (class_name, description)
			VALUES ($1, $2) RETURNING id
		`, "Class 1A", "First grade, section A").Scan(&classID)
	}
	if err != nil {
		log.Fatalf("failed to seed school class: %v", err)
	}
	fmt.Printf("school class ensured: id=%s\n", classID)

	password := "admin12345"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (user_name, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (user_name) WHERE deleted_at IS NULL
		DO UPDATE SET updated_at = now()
		RETURNING id
	`, "admin", "admin@smartschool.local", hash).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("admin ensured: id=%s userName=admin password=%s\n", adminID, password)
}
