package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/garnizeh/jobly/internal/config"
	"github.com/garnizeh/jobly/internal/db"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config YAML file")
		src        = flag.String("from", "", "Backup file written by db_backup")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.DatabaseDriver != string(db.SQLite) {
		fmt.Fprintln(os.Stderr, "Restore error: only the sqlite driver is supported")
		os.Exit(1)
	}
	if *src == "" {
		fmt.Fprintln(os.Stderr, "Restore error: -from is required")
		os.Exit(1)
	}

	if err := checkBackup(*src); err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}
	if err := copyFile(*src, cfg.DatabaseDSN); err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database restore completed. Restart the server to pick it up.")
}

// checkBackup refuses files that are not a healthy jobly database.
func checkBackup(path string) error {
	ctx := context.Background()
	backup, err := db.New(ctx, string(db.SQLite), "file:"+path+"?mode=ro")
	if err != nil {
		return err
	}
	defer backup.Close()

	var result string
	if err := backup.QueryRow(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}

	var n int
	if err := backup.QueryRow(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&n); err != nil {
		return fmt.Errorf("not a jobly database: %w", err)
	}

	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}

	return dstFile.Close()
}
