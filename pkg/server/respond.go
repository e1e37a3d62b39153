package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/observability"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      apperr.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch code := apperr.GetCode(err); {
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case code == apperr.ErrCodeNotFound, code == apperr.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == apperr.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := apperr.GetCode(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}
	msg := apperr.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal server error"
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "code", code, "error", err)
	}
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)

	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
