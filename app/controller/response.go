package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"frame-storefront/pricing"
	"frame-storefront/repository"
	"frame-storefront/service"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// errorResponse is the body of every error reply
type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ respondJSON: Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("validation failed: %s", strings.Join(fields, "; "))
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, repository.ErrInvalidReference),
		errors.Is(err, repository.ErrNegativePrice),
		errors.Is(err, service.ErrInvalidCartItem),
		errors.Is(err, service.ErrInvalidImage),
		errors.Is(err, service.ErrChunkOutOfRange),
		errors.Is(err, service.ErrUploadIncomplete):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrEmptyCart),
		errors.Is(err, pricing.ErrCouponInactive),
		errors.Is(err, pricing.ErrCouponExpired),
		errors.Is(err, pricing.ErrCouponExhausted),
		errors.Is(err, pricing.ErrCouponMinimum),
		errors.Is(err, pricing.ErrCouponMalformed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrSessionForbidden),
		errors.Is(err, service.ErrOrderForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrChunkTooLarge),
		errors.Is(err, service.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondServiceError logs err under op and writes the mapped status.
// Internal errors are reported as "<action> failed" without details.
func respondServiceError(w http.ResponseWriter, op, action string, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ %s: Error %s: %v", op, action, err)
		respondError(w, status, fmt.Sprintf("failed %s", action))
		return
	}
	log.Printf("⚠️  %s: %v", op, err)
	respondError(w, status, err.Error())
}
