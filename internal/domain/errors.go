package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrStoreOpen    = errors.New("almacén de datos no disponible")
	ErrStoreWrite   = errors.New("escritura en el almacén abortada")
)

// ValidationError describe una entrada rechazada antes de cualquier escritura.
// errors.Is(err, ErrInvalidInput) es verdadero.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye el error para un campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// StoreOpenError: el almacén no pudo abrirse (deshabilitado, sin permisos, migración fallida).
// Fatal para la sesión; la API sigue viva en modo degradado.
type StoreOpenError struct {
	Op  string
	Err error
}

func (e *StoreOpenError) Error() string {
	return fmt.Sprintf("store open (%s): %v", e.Op, e.Err)
}

func (e *StoreOpenError) Unwrap() []error { return []error{ErrStoreOpen, e.Err} }

// StoreWriteError: la transacción se abortó a mitad de camino; el rollback es total.
// El llamador decide si reintenta (las escrituras no son idempotentes).
type StoreWriteError struct {
	Op  string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store write (%s): %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() []error { return []error{ErrStoreWrite, e.Err} }
