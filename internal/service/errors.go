package service

import (
	"errors"
	"fmt"
)

// Sentinels for conflict and state errors. Typed errors below wrap them so
// handlers can map with errors.Is and still show the offending value.
var (
	ErrCodigoDuplicado    = errors.New("código de producto duplicado")
	ErrCategoriaDuplicada = errors.New("categoría duplicada")
	ErrCajaYaAbierta      = errors.New("la caja ya está abierta para esta fecha")
	ErrFechaDuplicada     = errors.New("ya existe una apertura para esta fecha")
	ErrCierreDuplicado    = errors.New("la caja ya fue cerrada para esta fecha")
	ErrCajaOcupada        = errors.New("otra operación de caja está en curso para esta fecha")
	ErrCredenciales       = errors.New("credenciales invalidas")
)

// ValidacionError rejects input before any write is attempted.
type ValidacionError struct {
	Campo  string
	Motivo string
}

func (e *ValidacionError) Error() string {
	if e.Campo == "" {
		return e.Motivo
	}
	return e.Campo + ": " + e.Motivo
}

func validacion(campo, motivo string, args ...any) error {
	return &ValidacionError{Campo: campo, Motivo: fmt.Sprintf(motivo, args...)}
}

// ConflictoError is a uniqueness or state conflict naming the offending value.
type ConflictoError struct {
	Valor string
	Err   error
}

func (e *ConflictoError) Error() string { return fmt.Sprintf("%s: %s", e.Err.Error(), e.Valor) }
func (e *ConflictoError) Unwrap() error { return e.Err }

func conflicto(err error, valor string) error { return &ConflictoError{Valor: valor, Err: err} }

// CategoriaEnUsoError blocks deleting a category still referenced by products.
type CategoriaEnUsoError struct {
	Productos int64
}

func (e *CategoriaEnUsoError) Error() string {
	return fmt.Sprintf("No se puede eliminar la categoría porque tiene %d productos asociados", e.Productos)
}

// StockInsuficienteError aborts a sale whose line would take stock below zero.
type StockInsuficienteError struct {
	Producto   string
	Disponible int
	Solicitado int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d", e.Producto, e.Disponible, e.Solicitado)
}

// PersistenciaError is a storage failure; the operation was rolled back.
// Op names what was being done; the cause stays available through Unwrap for logs.
type PersistenciaError struct {
	Op  string
	Err error
}

func (e *PersistenciaError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *PersistenciaError) Unwrap() error { return e.Err }

// persistencia wraps err unless it already is one of the domain errors above.
func persistencia(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		v  *ValidacionError
		c  *ConflictoError
		ce *CategoriaEnUsoError
		s  *StockInsuficienteError
		p  *PersistenciaError
	)
	if errors.As(err, &v) || errors.As(err, &c) || errors.As(err, &ce) || errors.As(err, &s) || errors.As(err, &p) {
		return err
	}
	return &PersistenciaError{Op: op, Err: err}
}
