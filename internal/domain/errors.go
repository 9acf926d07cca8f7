package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidID          = errors.New("id inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrDuplicateCode      = errors.New("el código de producto ya existe")
	ErrPageOutOfRange     = errors.New("la página solicitada está fuera de rango")
	ErrNothingDeleted     = errors.New("no se eliminó ningún documento")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)
