package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/notezipper/notezipper-go/internal/apperr"
	"github.com/notezipper/notezipper-go/internal/middleware"
	"github.com/notezipper/notezipper-go/internal/model"
)

const (
	maxBodyBytes     = 1 << 20  // 1MB
	maxUserBodyBytes = 10 << 20 // 10MB, pic may be an inline data URI
)

var errMultipleValues = errors.New("body must contain a single JSON value")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.MessageResponse{Message: msg})
}

// writeError reports err with the status of its kind. Causes of server-side
// failures are logged and never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	writeMessage(w, status, apperr.PublicMessage(err))
}

// decodeJSON strictly decodes a single JSON value of at most limit bytes into
// dst. It writes the error response itself and reports whether decoding
// succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil {
		if dec.Decode(&struct{}{}) != io.EOF {
			err = errMultipleValues
		}
	}
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeMessage(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	writeMessage(w, http.StatusBadRequest, "invalid request body")
	return false
}

// requireUser returns the authenticated user ID, answering 401 when the
// route was reached without one.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, no token")
	}
	return userID, ok
}
