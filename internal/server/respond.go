package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/ThomasStivers/labeller/pkg/errors"
	"github.com/ThomasStivers/labeller/pkg/observability"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and writes it as JSON. Errors
// without a code are reported as internal without their message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	msg := apperrors.UserMessage(err)
	if code == "" {
		code, msg = apperrors.ErrCodeInternal, "internal error"
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidColumns,
		apperrors.ErrCodeInvalidPattern,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidLabel:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnknownBuilding, apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
