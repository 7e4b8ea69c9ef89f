package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kioscopos/internal/clock"
	"kioscopos/internal/config"
	"kioscopos/internal/infra"
	"kioscopos/internal/repository"
	"kioscopos/internal/router"
	"kioscopos/internal/service"
	"kioscopos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev pretty, prod JSON
	zerolog.TimeFieldFormat = time.RFC3339
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	var locker service.Locker = infra.NewLocalLocker()
	if rdb != nil {
		locker = infra.NewRedisLocker(rdb)
	}

	mailer := infra.NewMailer(infra.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	var cierreMailer worker.Mailer
	if mailer != nil {
		cierreMailer = mailer
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Job handlers are wired here so the pool has every infrastructure dependency.
	dispatcher := worker.NewDispatcher(rdb)
	dispatcher.Handle(worker.JobTicket,
		worker.NewTicketWorker(repository.NewVentaRepository(db), cfg.PDFStoragePath, cfg.ShopName).Process)
	dispatcher.Handle(worker.JobCierre,
		worker.NewCierreWorker(cierreMailer, cfg.OwnerEmail, cfg.PDFStoragePath, cfg.ShopName).Process)
	dispatcher.Handle(worker.JobBackup,
		worker.NewBackupWorker(infra.NewBackup(db, cfg.BackupDir, cfg.BackupMax)).Process)
	dispatcher.Start(ctx, cfg.WorkerPoolSize)
	if infra.EsSQLite(db) {
		worker.StartBackupCron(ctx, dispatcher, cfg.BackupInterval)
	}

	if err := service.NewCategoriaService(repository.NewCategoriaRepository(db)).SembrarPorDefecto(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed categories")
	}

	r := router.New(cfg, router.Deps{
		DB:         db,
		Redis:      rdb,
		Mailer:     mailer,
		Locker:     locker,
		Dispatcher: dispatcher,
		Clock:      clock.Sistema(),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("%s listening on :%d", cfg.ShopName, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	// Stop the workers and let in-flight jobs (PDFs, mails, backups) finish.
	cancel()
	dispatcher.Wait()
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}
