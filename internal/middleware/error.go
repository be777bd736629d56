package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"shoe-storefront/internal/domain"

	"go.uber.org/zap"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithErrorDetails(w, statusCode, message, nil)
}

func RespondWithErrorDetails(w http.ResponseWriter, statusCode int, message string, details map[string]interface{}) {
	RespondWithJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:      http.StatusText(statusCode),
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// RespondWithValidationErrors sends the field errors of a rejected request body
func RespondWithValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	RespondWithErrorDetails(w, http.StatusBadRequest, "validation failed", map[string]interface{}{
		"validation_errors": errors,
	})
}

// RespondWithDomainError maps domain errors onto HTTP statuses. Validation errors
// become 400 with their field messages, collaborator failures 503, anything else 500.
func RespondWithDomainError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		logger.Debug("Request rejected", zap.Error(err))
		var details map[string]interface{}
		if len(verr.Fields) > 0 {
			details = map[string]interface{}{"fields": verr.Fields}
		}
		RespondWithErrorDetails(w, http.StatusBadRequest, verr.Message, details)
		return
	}

	var cerr *domain.CollaboratorError
	if errors.As(err, &cerr) {
		logger.Error("Collaborator unavailable", zap.String("op", cerr.Op), zap.Error(cerr.Err))
		RespondWithError(w, http.StatusServiceUnavailable, "service temporarily unavailable, please try again")
		return
	}

	logger.Error("Unhandled error", zap.Error(err))
	RespondWithError(w, http.StatusInternalServerError, "internal server error")
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
