package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as an AppError body. Errors that are not an
// AppError become InternalServerError and are logged with their cause.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		appErr = common.NewInternalServerError(err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		logging.FromContext(r.Context(), s.logger).Error(r.Context(), "request failed", "error", err)
	}

	writeJSON(w, appErr.StatusCode, appErr)
}

// decodeJSON reads a JSON body into dst. A missing or malformed body is a
// ValidationError.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return common.NewValidationError(
			"O corpo da requisição não é um JSON válido.",
			"Verifique os dados enviados e tente novamente.",
		).WithCause(err)
	}
	return nil
}
