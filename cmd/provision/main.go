package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhalawais/Stallion/config"
	"github.com/minhalawais/Stallion/internal/auth"
	"github.com/minhalawais/Stallion/internal/domain"
	"github.com/minhalawais/Stallion/internal/repository"
)

// provision creates an admin account, or promotes an existing one. This is
// the only path that sets the admin flag; no user-facing endpoint can.
func main() {
	var (
		email     = flag.String("email", "", "admin email (required)")
		password  = flag.String("password", "", "admin password (required for new accounts)")
		firstName = flag.String("first-name", "Admin", "first name")
		lastName  = flag.String("last-name", "", "last name")
	)
	flag.Parse()

	if *email == "" {
		log.Fatal("missing -email")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	users := repository.NewUserRepository(pool)

	if err := users.SetAdmin(ctx, *email, true); err == nil {
		log.Printf("promoted existing user %s to admin", *email)
		return
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatalf("promote user: %v", err)
	}

	if *password == "" {
		log.Fatal("missing -password for new account")
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user := &domain.User{
		Email:        *email,
		PasswordHash: hash,
		FirstName:    *firstName,
		LastName:     *lastName,
		IsAdmin:      true,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	log.Printf("created admin user %s (%s)", *email, user.ID)
}
