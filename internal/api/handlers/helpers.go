package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"group-trip-planner/internal/domain"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	TripTokenHeader = "X-Trip-Token"
	maxBodyBytes    = 1 << 20
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Warn("encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain sentinels to status codes. Anything
// unrecognised is logged and reported as a generic 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrDuplicateSlot):
		h.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		h.writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		h.writeError(w, r, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrUnauthorized):
		h.writeError(w, r, http.StatusUnauthorized, "Missing "+TripTokenHeader+" header")
	case errors.Is(err, domain.ErrForbidden):
		h.writeError(w, r, http.StatusForbidden, "Invalid trip access token")
	default:
		h.Log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		h.writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads exactly one JSON object into dst and validates it. It
// writes the 400 response itself and reports whether the caller may go on.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		h.writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Drop the root type name: "CreateTripRequest.participants[0].name".
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func tripToken(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(TripTokenHeader))
}
