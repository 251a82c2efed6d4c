package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccmg/qbank-admin/internal/app"
	"github.com/ccmg/qbank-admin/internal/composer"
	"github.com/ccmg/qbank-admin/internal/config"
	"github.com/ccmg/qbank-admin/internal/export"
	"github.com/ccmg/qbank-admin/internal/logger"
	"github.com/ccmg/qbank-admin/internal/notify"
)

// Exports the full question bank to an xlsx workbook. Credentials come
// from the environment (ADMIN_USERNAME / ADMIN_PASSWORD) unless a valid
// session is already on file.
func main() {
	output := flag.String("o", "question-bank.xlsx", "output file path")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	notifier := notify.NewLog(log)
	// Destructive flows are never reached from this command.
	confirm := composer.ConfirmFunc(func(string) bool { return false })

	engine := app.New(cfg, log, notifier, confirm)
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// ─── Authenticate ──────────────────────────────────────────────────
	if engine.IsAuthenticated() {
		engine.Hydrate(ctx)
	} else {
		if err := engine.Login(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("Login failed")
		}
	}

	questions := engine.State().Questions
	if len(questions) == 0 {
		log.Warn().Msg("Question bank is empty; writing workbook anyway")
	}

	// ─── Write Workbook ────────────────────────────────────────────────
	data, err := export.WorkbookBytes(questions)
	if err != nil {
		log.Fatal().Err(err).Msg("Workbook build failed")
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("Workbook write failed")
	}

	log.Info().
		Str("path", *output).
		Int("questions", len(questions)).
		Msg("Export complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
