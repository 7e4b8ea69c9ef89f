// backup takes one snapshot of the SQLite store outside the server's schedule.
// Uso: go run ./cmd/backup
package main

import (
	"context"
	"os"
	"time"

	"kioscopos/internal/config"
	"kioscopos/internal/infra"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	b := infra.NewBackup(db, cfg.BackupDir, cfg.BackupMax)
	path, err := b.Ejecutar(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("backup failed")
	}
	copias, _ := b.Listar()
	log.Info().Str("path", path).Int("copias", len(copias)).Msg("backup done")
}
