package infra

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"kioscopos/internal/clock"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const backupPrefix = "kiosco_"

// ErrBackupNoSoportado is returned for databases other than SQLite;
// PostgreSQL deployments are expected to use pg_dump.
var ErrBackupNoSoportado = errors.New("backup: only supported on sqlite")

// Backup snapshots the SQLite database into a directory, keeping the newest Max copies.
type Backup struct {
	db  *gorm.DB
	dir string
	max int
	now func() time.Time
}

func NewBackup(db *gorm.DB, dir string, max int) *Backup {
	if max <= 0 {
		max = 10
	}
	return &Backup{db: db, dir: dir, max: max, now: time.Now}
}

// Ejecutar writes a consistent copy with VACUUM INTO and prunes old copies.
func (b *Backup) Ejecutar(ctx context.Context) (string, error) {
	if !EsSQLite(b.db) {
		return "", ErrBackupNoSoportado
	}
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return "", fmt.Errorf("backup: create dir: %w", err)
	}
	nombre := backupPrefix + b.now().In(clock.Zona).Format("20060102_150405.000") + ".db"
	destino := filepath.Join(b.dir, nombre)
	if err := b.db.WithContext(ctx).Exec("VACUUM INTO ?", destino).Error; err != nil {
		return "", fmt.Errorf("backup: vacuum into %s: %w", destino, err)
	}
	if err := b.podar(); err != nil {
		log.Warn().Err(err).Str("dir", b.dir).Msg("backup: prune failed")
	}
	log.Info().Str("path", destino).Msg("backup: snapshot written")
	return destino, nil
}

// Listar returns existing snapshots, oldest first.
func (b *Backup) Listar() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(b.dir, backupPrefix+"*.db"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (b *Backup) podar() error {
	files, err := b.Listar()
	if err != nil {
		return err
	}
	var errs []error
	for len(files) > b.max {
		if err := os.Remove(files[0]); err != nil {
			errs = append(errs, err)
		}
		files = files[1:]
	}
	return errors.Join(errs...)
}
