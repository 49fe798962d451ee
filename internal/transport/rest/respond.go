package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// writeJSON encodes v as-is. Used for probe endpoints that do not carry
// the envelope.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeSuccess writes the uniform envelope with success=true and merges
// the payload keys alongside it.
func writeSuccess(w http.ResponseWriter, status int, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

// writeDomainError maps service errors onto the envelope. Anything not
// in the domain taxonomy is a 500 with a generic message; the real
// error goes to the log only.
func writeDomainError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		fields := make([]map[string]string, 0, len(vErr.Errors))
		for _, fe := range vErr.Errors {
			fields = append(fields, map[string]string{"field": fe.Field, "message": fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "validation failed",
			"errors":  fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation failed")
	case errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusUnauthorized, "invalid or already used OTP")
	case errors.Is(err, domain.ErrCodeExpired):
		writeError(w, http.StatusUnauthorized, "OTP has expired, request a new one")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrArtifactMissing):
		writeError(w, http.StatusNotFound, "certificate file is not available")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrNotApproved):
		writeError(w, http.StatusConflict, "request must be approved first")
	case errors.Is(err, domain.ErrAlreadyProcessed):
		writeError(w, http.StatusConflict, "payment already processed")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "status change not allowed")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		log.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a JSON request body into dst with a size cap.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}
