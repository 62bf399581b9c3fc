package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrValidation   = errors.New("entrada inválida")
	ErrIllegalState = errors.New("operación no permitida en el estado actual")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("modificación concurrente")
	ErrUpstream     = errors.New("error en servicio externo")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Error asocia un mensaje legible para el cliente con uno de los errores sentinela.
// errors.Is(err, domain.ErrValidation) funciona sobre cualquier *Error de ese tipo.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Is permite comparar contra el sentinela.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Unwrap expone la causa original.
func (e *Error) Unwrap() error { return e.Cause }

// Validation construye un error de validación con mensaje formateado.
func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound construye un error de recurso inexistente.
func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// IllegalState construye un error de transición o estado no permitido.
func IllegalState(format string, args ...any) error {
	return &Error{Kind: ErrIllegalState, Message: fmt.Sprintf(format, args...)}
}

// Duplicate construye un error de clave de negocio duplicada.
func Duplicate(format string, args ...any) error {
	return &Error{Kind: ErrDuplicate, Message: fmt.Sprintf(format, args...)}
}

// Conflict construye un error de escritura concurrente (versión desactualizada).
func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Upstream envuelve un fallo de infraestructura (base de datos, servicios externos).
func Upstream(op string, cause error) error {
	return &Error{Kind: ErrUpstream, Message: op, Cause: cause}
}

// Message devuelve el mensaje de negocio de err si es un *Error, o fallback si no lo es.
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}
