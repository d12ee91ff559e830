package database

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/anyulbade/merchant-dashboard-api/seeddata"
)

type seedUser struct {
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Email         string   `json:"email"`
	PhoneNumber   string   `json:"phone_number"`
	Role          string   `json:"role"`
	Status        string   `json:"status"`
	StoreBranches []string `json:"store_branches"`
	MerchantID    string   `json:"merchant_id"`
}

// SeedOptions controls the bootstrap owner account. When AdminPassword is
// empty a random one is generated and logged once.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	DemoPassword  string
}

func SeedData(ctx context.Context, pool *pgxpool.Pool, opts SeedOptions) error {
	var count int
	err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if count > 0 {
		log.Info().Msg("seed data already exists, skipping")
		return nil
	}

	var demo []seedUser
	if err := json.Unmarshal(seeddata.UsersJSON, &demo); err != nil {
		return fmt.Errorf("parse users JSON: %w", err)
	}

	adminPassword := opts.AdminPassword
	if adminPassword == "" {
		adminPassword, err = randomPassword()
		if err != nil {
			return err
		}
		log.Warn().
			Str("email", opts.AdminEmail).
			Str("password", adminPassword).
			Msg("generated owner password, change it after first login")
	}
	demoPassword := opts.DemoPassword
	if demoPassword == "" {
		demoPassword = adminPassword
	}

	adminEmail := strings.ToLower(strings.TrimSpace(opts.AdminEmail))
	if adminEmail == "" {
		adminEmail = "owner@merchant.local"
	}
	users := append([]seedUser{{
		FirstName:  "Merchant",
		LastName:   "Owner",
		Email:      adminEmail,
		Role:       "admin",
		Status:     "active",
		MerchantID: "MRC-001",
	}}, demo...)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, u := range users {
		password := demoPassword
		if i == 0 {
			password = adminPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		branches := u.StoreBranches
		if branches == nil {
			branches = []string{}
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO users (first_name, last_name, email, password_hash, phone_number, role, status, store_branches, merchant_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			u.FirstName, u.LastName, u.Email, string(hash), u.PhoneNumber, u.Role, u.Status, branches, u.MerchantID)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.Email, err)
		}
	}
	log.Info().Int("count", len(users)).Msg("inserted users")

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed data: %w", err)
	}

	log.Info().Msg("seed data generation complete")
	return nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
