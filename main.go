package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/sculpture-survey/auth"
	"github.com/danielhkuo/sculpture-survey/cliparse"
	"github.com/danielhkuo/sculpture-survey/db"
	"github.com/danielhkuo/sculpture-survey/logs"
	"github.com/danielhkuo/sculpture-survey/models"
	"github.com/danielhkuo/sculpture-survey/router"
	"github.com/danielhkuo/sculpture-survey/session"
	"github.com/danielhkuo/sculpture-survey/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}

	logger, closer, err := logs.New(cfg.LogLevel, cfg.LogFile, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One-shot modes
	switch {
	case cfg.HashPassword != "":
		return printHash(cfg)
	case cfg.PrintSchema:
		return printSchemas(cfg)
	case cfg.Repair:
		return repair(ctx, cfg)
	}

	q := models.DefaultQuestionnaire()
	if cfg.QuestionnaireFile != "" {
		if q, err = models.LoadQuestionnaire(cfg.QuestionnaireFile); err != nil {
			return err
		}
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.AdminPasswordHash == "" || cfg.AdminSalt == "" {
		slog.Warn("admin credentials not configured; admin login disabled (generate them with -hash-password)")
	}
	slog.Info("session starting", "store", cfg.StoreType, "data_dir", cfg.DataDir, "questions", len(q.Questions))

	// The flow blocks on stdin; a signal ends the process without waiting for input
	done := make(chan error, 1)
	go func() {
		done <- router.NewRouter(st, cfg, q).Run(ctx, session.New(os.Stdin, os.Stdout))
	}()

	select {
	case err := <-done:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("interrupted")
		return nil
	}
}

func openStore(ctx context.Context, cfg cliparse.Config) (store.Store, error) {
	switch cfg.StoreType {
	case cliparse.StoreSQLite:
		return db.Open(ctx, db.DialectSQLite, cfg.DatabaseURL)
	case cliparse.StorePostgres:
		return db.Open(ctx, db.DialectPostgres, cfg.DatabaseURL)
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir %s: %w", cfg.DataDir, err)
		}
		return store.NewFileStore(cfg.ViewersFile, cfg.SurveyFile), nil
	}
}

func printHash(cfg cliparse.Config) error {
	salt := cfg.AdminSalt
	if salt == "" {
		var err error
		if salt, err = auth.GenerateSalt(16); err != nil {
			return err
		}
	}
	fmt.Printf("ADMIN_SALT=%s\n", salt)
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", auth.HashPassword(cfg.HashPassword, salt))
	return nil
}

func printSchemas(cfg cliparse.Config) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, fsch := range models.FileSchemas(cfg.ViewersFile, cfg.SurveyFile) {
		if err := enc.Encode(fsch); err != nil {
			return fmt.Errorf("failed to encode schema for %s: %w", fsch.File, err)
		}
	}
	return nil
}

func repair(ctx context.Context, cfg cliparse.Config) error {
	if cfg.StoreType != cliparse.StoreJSON {
		return fmt.Errorf("-repair only applies to the json store, not %s", cfg.StoreType)
	}

	res, err := store.NewFileStore(cfg.ViewersFile, cfg.SurveyFile).RepairSurveys(ctx)
	if err != nil {
		return err
	}
	if !res.Repaired {
		fmt.Printf("%s: %d records, nothing to repair\n", cfg.SurveyFile, res.Records)
		return nil
	}
	fmt.Printf("%s: merged %d arrays into one (%d records)\n", cfg.SurveyFile, res.Arrays, res.Records)
	return nil
}
