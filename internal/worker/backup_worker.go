package worker

// backup_worker.go
// Runs database snapshots on demand (after each close) and on a fixed schedule.

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"kioscopos/internal/infra"

	"github.com/rs/zerolog/log"
)

// BackupJobPayload is the job envelope sent to QueueBackups.
type BackupJobPayload struct {
	Motivo string `json:"motivo"`
}

type Snapshotter interface {
	Ejecutar(ctx context.Context) (string, error)
}

type BackupWorker struct {
	backup Snapshotter
}

func NewBackupWorker(backup Snapshotter) *BackupWorker {
	return &BackupWorker{backup: backup}
}

func (w *BackupWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload BackupJobPayload
	_ = json.Unmarshal(raw, &payload)

	path, err := w.backup.Ejecutar(ctx)
	if errors.Is(err, infra.ErrBackupNoSoportado) {
		log.Debug().Msg("backup_worker: database does not support file snapshots, skipping")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("motivo", payload.Motivo).Str("path", path).Msg("backup_worker: done")
	return nil
}

// StartBackupCron enqueues a backup every interval until ctx is cancelled.
// A non-positive interval disables the schedule.
func StartBackupCron(ctx context.Context, d *Dispatcher, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("backup_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("backup_cron: shutting down")
				return
			case <-ticker.C:
				if err := d.EnqueueBackup(ctx, BackupJobPayload{Motivo: "programado"}); err != nil {
					log.Error().Err(err).Msg("backup_cron: enqueue failed")
				}
			}
		}
	}()
}
