package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ritmodivulga/promo-engine/internal/auth"
	"github.com/ritmodivulga/promo-engine/internal/domain"
	customError "github.com/ritmodivulga/promo-engine/pkg/errors"
	"github.com/ritmodivulga/promo-engine/pkg/response"
)

const maxBodyBytes = 1 << 20

// writeError maps business errors to HTTP status codes. Anything that is not
// a known business failure is logged and reported as a 500 without details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var be *customError.BusinessError
	if !errors.As(err, &be) {
		slog.ErrorContext(r.Context(), "unhandled error",
			slog.String("path", r.URL.Path),
			slog.String("request_id", response.RequestID(r.Context())),
			slog.Any("error", err),
		)
		response.InternalServerError(w, "Internal server error", nil)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, customError.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, customError.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, customError.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, customError.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("request_id", response.RequestID(r.Context())),
			slog.Any("error", err),
		)
		response.Coded(w, status, be.Code, "Internal server error")
		return
	}
	response.Coded(w, status, be.Code, be.Message)
}

// actor returns the authenticated caller. Routes are mounted behind the auth
// middleware, so a missing actor only happens on misconfigured routers.
func actor(r *http.Request) domain.Actor {
	a, _ := auth.ActorFromContext(r.Context())
	return a
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(w, fmt.Sprintf("Invalid %s", name), err)
		return uuid.Nil, false
	}
	return id, true
}
