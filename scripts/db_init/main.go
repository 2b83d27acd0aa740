package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/garnizeh/jobly/db"
	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/config"
	"github.com/garnizeh/jobly/internal/db"
	"github.com/garnizeh/jobly/internal/password"
	"github.com/garnizeh/jobly/internal/repository/sqlstore"
	"github.com/garnizeh/jobly/pkg/models"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config YAML file")
		seed       = flag.Bool("seed", false, "Load the demo companies and jobs")
		adminUser  = flag.String("admin", "", "Create (or promote) this username as an admin")
		adminPass  = flag.String("admin-password", os.Getenv("JOBLY_ADMIN_PASSWORD"), "Password for a newly created admin")
		adminEmail = flag.String("admin-email", "", "Email for a newly created admin")
	)
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Files); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}
	if *seed {
		if err := db.Seed(ctx, database, dbfs.Files); err != nil {
			fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
			os.Exit(1)
		}
	}

	if *adminUser != "" {
		if err := bootstrapAdmin(ctx, cfg, database, *adminUser, *adminPass, *adminEmail); err != nil {
			fmt.Fprintf(os.Stderr, "Admin bootstrap error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("User %q is an admin.\n", *adminUser)
	}

	fmt.Println("Database initialized successfully.")
}

// bootstrapAdmin promotes an existing user or registers a new one and then
// promotes it. Registration through the API can never grant admin rights.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, database *db.DB, username, pass, email string) error {
	hasher, err := password.New(cfg.PasswordHashing, cfg.BcryptCost)
	if err != nil {
		return err
	}
	repo := sqlstore.New(database, hasher, nil)

	_, err = repo.GetUser(ctx, username)
	switch {
	case err == nil:
	case apperr.KindOf(err) == apperr.NotFound:
		if pass == "" || email == "" {
			return errors.New("-admin-password and -admin-email are required for a new user")
		}
		if _, err := repo.CreateUser(ctx, &models.NewUser{
			Username:  username,
			Password:  pass,
			FirstName: "Admin",
			LastName:  "User",
			Email:     email,
		}); err != nil {
			return err
		}
	default:
		return err
	}

	return repo.SetAdmin(ctx, username, true)
}
