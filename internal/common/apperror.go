package common

import (
	"encoding/json"
	"net/http"
)

// AppError is the structured error surfaced to API clients. It carries a
// user-facing message, a suggested action and the HTTP status code that the
// transport layer should answer with.
//
// AppError unwraps to the sentinel of its kind, so
// errors.Is(err, ErrorNotFound) holds for any error built by NewNotFoundError.
type AppError struct {
	Name       string
	Message    string
	Action     string
	StatusCode int

	kind  error
	cause error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind sentinel and the optional underlying cause.
func (e *AppError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// MarshalJSON renders the error in the wire shape shared by every endpoint.
func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string `json:"name"`
		Message    string `json:"message"`
		Action     string `json:"action"`
		StatusCode int    `json:"statusCode"`
	}{e.Name, e.Message, e.Action, e.StatusCode})
}

// WithCause returns a copy of e that also wraps cause. The cause never leaks
// into the JSON body.
func (e *AppError) WithCause(cause error) *AppError {
	c := *e
	c.cause = cause
	return &c
}

func NewNotFoundError(message, action string) *AppError {
	if message == "" {
		message = "Não foi possível encontrar este recurso no sistema."
	}
	if action == "" {
		action = "Verifique se os parâmetros enviados na consulta estão certos."
	}
	return &AppError{
		Name:       "NotFoundError",
		Message:    message,
		Action:     action,
		StatusCode: http.StatusNotFound,
		kind:       ErrorNotFound,
	}
}

func NewUnauthorizedError(message, action string) *AppError {
	if message == "" {
		message = "Usuário não autenticado."
	}
	if action == "" {
		action = "Faça novamente o login para continuar."
	}
	return &AppError{
		Name:       "UnauthorizedError",
		Message:    message,
		Action:     action,
		StatusCode: http.StatusUnauthorized,
		kind:       ErrorUnauthorized,
	}
}

func NewValidationError(message, action string) *AppError {
	if message == "" {
		message = "Um erro de validação ocorreu."
	}
	if action == "" {
		action = "Ajuste os dados enviados e tente novamente."
	}
	return &AppError{
		Name:       "ValidationError",
		Message:    message,
		Action:     action,
		StatusCode: http.StatusBadRequest,
		kind:       ErrorValidation,
	}
}

func NewMethodNotAllowedError() *AppError {
	return &AppError{
		Name:       "MethodNotAllowedError",
		Message:    "Método não permitido para este endpoint.",
		Action:     "Verifique se o método HTTP enviado é válido para este endpoint.",
		StatusCode: http.StatusMethodNotAllowed,
		kind:       ErrorMethodNotAllowed,
	}
}

// NewInternalServerError hides cause from the client but keeps it reachable
// through errors.Unwrap for logging.
func NewInternalServerError(cause error) *AppError {
	return &AppError{
		Name:       "InternalServerError",
		Message:    "Um erro interno não esperado aconteceu.",
		Action:     "Entre em contato com o suporte.",
		StatusCode: http.StatusInternalServerError,
		kind:       ErrorInternal,
		cause:      cause,
	}
}
