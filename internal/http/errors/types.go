// Package errors define la taxonomía de errores de la API.
//
// Los services devuelven sentinels; los controllers los traducen al AppError
// más cercano. Los detalles internos nunca cruzan el boundary HTTP.
package errors

import (
	"fmt"
	"net/http"
)

// AppError define la estructura estándar para errores de la aplicación.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"` // usado para el header, no se serializa
	Err        error  `json:"-"` // causa original, útil para logs, no se expone
}

// Error implementa la interfaz error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap permite acceder al error original.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New crea un nuevo AppError.
func New(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// FromError convierte un error genérico en AppError.
// Si no es un AppError, devuelve un error interno genérico conservando la causa.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternal.WithCause(err)
}

// WithDetail agrega detalle al error. Devuelve una COPIA para no mutar
// las variables globales base.
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause agrega el error original. Devuelve una COPIA.
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// =================================================================================
// LISTA DE ERRORES PREDEFINIDOS
// =================================================================================

// 400 — validación / conflicto / token
var (
	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "La solicitud contiene sintaxis inválida o parámetros faltantes",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidJSON = &AppError{
		Code:       "INVALID_JSON",
		Message:    "El cuerpo de la solicitud no es un JSON válido",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrMissingFields = &AppError{
		Code:       "MISSING_FIELDS",
		Message:    "Todos los campos son requeridos",
		HTTPStatus: http.StatusBadRequest,
	}

	// El registro duplicado responde 400 (no 409) para conservar el contrato
	// original del storefront; el code lo distingue de otras validaciones.
	ErrEmailTaken = &AppError{
		Code:       "EMAIL_TAKEN",
		Message:    "El email ya está registrado",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrNameTaken = &AppError{
		Code:       "NAME_TAKEN",
		Message:    "Ya existe un producto con ese nombre",
		HTTPStatus: http.StatusBadRequest,
	}

	// Categoría fusionada a propósito: token inexistente, expirado o ya
	// consumido son indistinguibles para el caller.
	ErrTokenInvalidOrExpired = &AppError{
		Code:       "TOKEN_INVALID_OR_EXPIRED",
		Message:    "El token es inválido o ha expirado",
		HTTPStatus: http.StatusBadRequest,
	}
)

// 401 — autenticación. Mensajes distintos por diseño del storefront
// (ver notas de diseño: fuga menor de información, conservada).
var (
	ErrUserNotFound = &AppError{
		Code:       "USER_NOT_FOUND",
		Message:    "Usuario no encontrado",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrBadPassword = &AppError{
		Code:       "BAD_PASSWORD",
		Message:    "Contraseña incorrecta",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrAccountInactive = &AppError{
		Code:       "ACCOUNT_INACTIVE",
		Message:    "Tu cuenta está inactiva. Contacta al administrador.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrEmailNotVerified = &AppError{
		Code:       "EMAIL_NOT_VERIFIED",
		Message:    "Verifica tu email antes de iniciar sesión.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "No autorizado. Se requiere autenticación.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrProviderAuth = &AppError{
		Code:       "PROVIDER_AUTH_FAILED",
		Message:    "Error en la autenticación con Google",
		HTTPStatus: http.StatusBadRequest,
	}
)

// 403 / 404 / 405
var (
	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "No tiene permisos para realizar esta acción",
		HTTPStatus: http.StatusForbidden,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "El recurso solicitado no fue encontrado",
		HTTPStatus: http.StatusNotFound,
	}

	ErrMethodNotAllowed = &AppError{
		Code:       "METHOD_NOT_ALLOWED",
		Message:    "Método HTTP no permitido para este recurso",
		HTTPStatus: http.StatusMethodNotAllowed,
	}
)

// 429 / 5xx
var (
	ErrTooManyRequests = &AppError{
		Code:       "TOO_MANY_REQUESTS",
		Message:    "Demasiadas solicitudes. Intenta de nuevo más tarde.",
		HTTPStatus: http.StatusTooManyRequests,
	}

	ErrUpstream = &AppError{
		Code:       "UPSTREAM_ERROR",
		Message:    "Un servicio externo falló al procesar la solicitud",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "Error interno del servidor",
		HTTPStatus: http.StatusInternalServerError,
	}
)
