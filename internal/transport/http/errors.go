package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/logging"
)

// apiError is the JSON error envelope returned by every endpoint.
type apiError struct {
	Code    string
	Message string
	Status  int
	Details map[string]string
}

func newAPIError(code, message string, status int) apiError {
	return apiError{Code: code, Message: message, Status: status}
}

func badRequest(message string) apiError {
	return newAPIError("invalid_request", message, http.StatusBadRequest)
}

// requestError is a malformed request detected by the transport itself.
type requestError struct {
	message string
}

func (e *requestError) Error() string { return e.message }

func errBadRequest(message string) error {
	return &requestError{message: message}
}

// mapError converts domain errors to the envelope. Unknown errors become 500 internal_error.
func mapError(err error) apiError {
	if de, ok := domain.AsError(err); ok {
		return newAPIError(de.Code, err.Error(), de.Status)
	}

	var re *requestError
	if errors.As(err, &re) {
		return badRequest(re.message)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		e := badRequest("request validation failed")
		e.Details = details
		return e
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newAPIError("timeout", "request timed out", http.StatusGatewayTimeout)
	}
	return newAPIError("internal_error", "internal server error", http.StatusInternalServerError)
}

func writeError(ctx context.Context, w http.ResponseWriter, e apiError) {
	payload := map[string]any{
		"error":   e.Code,
		"message": strings.TrimSpace(e.Message),
		"status":  e.Status,
	}
	if id := middleware.GetReqID(ctx); id != "" {
		payload["request_id"] = id
	}
	if len(e.Details) > 0 {
		payload["details"] = e.Details
	}
	writeJSON(w, e.Status, payload)
}

// respondError logs server-side failures and writes the mapped envelope.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	e := mapError(err)
	if e.Status >= http.StatusInternalServerError {
		logging.FromContext(ctx, nil).Error("request failed", zap.Error(err))
	}
	writeError(ctx, w, e)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
