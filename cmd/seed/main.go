package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/DonOmbisi/kilimo3/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	wallet := "0x1111111111111111111111111111111111111111"

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (wallet_address, name, basename, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (wallet_address) DO UPDATE SET updated_at = now()
		RETURNING id
	`, wallet, "Demo Farmer", "demo.base.eth", "+254700000001").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s wallet=%s\n", userID, wallet)

	var listingID string
	err = db.QueryRow(`
		INSERT INTO listings (title, descr, price, total_stock, images, location, owner_id, listing_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, "Fresh maize, 90kg bags", "Grade one maize from this season's harvest.", "32.50", 40,
		"{}", "Nakuru", userID, 1).Scan(&listingID)
	if err != nil {
		log.Fatalf("failed to seed listing: %v", err)
	}
	fmt.Printf("seeded listing: id=%s\n", listingID)

	var fundraiserID string
	err = db.QueryRow(`
		INSERT INTO fundraisers (title, story, target_funds, project_id, deadline, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, "Drip irrigation for the co-op", "Help us install drip lines across five acres.",
		"5000.00", 1, time.Now().AddDate(0, 3, 0), userID).Scan(&fundraiserID)
	if err != nil {
		log.Fatalf("failed to seed fundraiser: %v", err)
	}
	fmt.Printf("seeded fundraiser: id=%s\n", fundraiserID)
}
