package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction; any error rolls everything back.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// Locker serializes work on a key (one calendar date of the register).
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func lockCaja(ctx context.Context, l Locker, fecha string) (func(), error) {
	if l == nil {
		return func() {}, nil
	}
	unlock, err := l.Lock(ctx, "caja:"+fecha)
	if err != nil {
		return nil, conflicto(ErrCajaOcupada, fecha)
	}
	return unlock, nil
}

// esViolacionUnica recognizes unique-constraint failures from both SQLite and PostgreSQL.
func esViolacionUnica(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "sqlstate 23505")
}
