package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/logger"
	"github.com/abhisek/studyhub/internal/profile"
	"github.com/abhisek/studyhub/internal/progress"
	"github.com/abhisek/studyhub/internal/quizgen"
	"github.com/abhisek/studyhub/internal/store"
)

// Error codes
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeDuplicate        = "DUPLICATE"
	ErrCodePermissionDenied = "PERMISSION_DENIED"
	ErrCodeUnavailable      = "UNAVAILABLE"
	ErrCodeAIFailed         = "AI_FAILED"
	ErrCodeAINotConfigured  = "AI_NOT_CONFIGURED"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeBadRequest       = "BAD_REQUEST"
)

// AppError is an application error carrying its HTTP status and error code.
type AppError struct {
	Code    string // e.g. "NOT_FOUND", "VALIDATION_ERROR"
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewBadRequestError creates a BAD_REQUEST error.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: ErrCodeBadRequest, Message: message, Status: http.StatusBadRequest}
}

// NewValidationError creates a VALIDATION_ERROR.
func NewValidationError(reason string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: reason, Status: http.StatusBadRequest}
}

// mapError classifies a domain error into an AppError. The classes mirror
// how the user recovers: fix the input, fix access configuration, try
// again, or rephrase the AI request.
func mapError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	// Mutator rejections: input problems and races.
	case errors.Is(err, progress.ErrDuplicateQuiz):
		return &AppError{Code: ErrCodeDuplicate, Message: "this quiz was already submitted", Status: http.StatusConflict, Err: err}
	case errors.Is(err, progress.ErrTaskNotFound), errors.Is(err, progress.ErrItemNotFound):
		return &AppError{Code: ErrCodeNotFound, Message: "no such entry; it may have been deleted on another device", Status: http.StatusNotFound, Err: err}
	case errors.Is(err, store.ErrProfileNotFound):
		return &AppError{Code: ErrCodeNotFound, Message: "no profile yet; create one first", Status: http.StatusNotFound, Err: err}
	case errors.Is(err, store.ErrProfileExists):
		return &AppError{Code: ErrCodeDuplicate, Message: "a profile already exists for this user", Status: http.StatusConflict, Err: err}
	case errors.Is(err, progress.ErrInvalidQuiz),
		errors.Is(err, progress.ErrInvalidTimeRange),
		errors.Is(err, progress.ErrEmptyTask),
		errors.Is(err, progress.ErrInvalidProgress),
		errors.Is(err, profile.ErrEmailImmutable),
		errors.Is(err, profile.ErrEmptyName):
		return &AppError{Code: ErrCodeValidation, Message: err.Error(), Status: http.StatusBadRequest, Err: err}

	// Store failures.
	case errors.Is(err, store.ErrPermissionDenied):
		return &AppError{
			Code:    ErrCodePermissionDenied,
			Message: "this record belongs to another user; check the store access rules",
			Status:  http.StatusForbidden,
			Err:     err,
		}
	case errors.Is(err, store.ErrUnavailable):
		return &AppError{Code: ErrCodeUnavailable, Message: "storage is unavailable, try again", Status: http.StatusServiceUnavailable, Err: err}

	// AI failures: a distinct class, since the remedy is rephrasing the
	// input rather than retrying the connection.
	case errors.Is(err, llm.ErrNotConfigured):
		return &AppError{Code: ErrCodeAINotConfigured, Message: "no AI provider is configured", Status: http.StatusServiceUnavailable, Err: err}
	}

	var blocked *llm.ErrContentBlocked
	var invalid *llm.ErrInvalidResponse
	var truncated *llm.ErrMaxTokensExceeded
	var quizInvalid *quizgen.ValidationError
	if errors.As(err, &blocked) || errors.As(err, &invalid) || errors.As(err, &truncated) || errors.As(err, &quizInvalid) {
		return &AppError{
			Code:    ErrCodeAIFailed,
			Message: "the AI could not complete this request; try rephrasing the input",
			Status:  http.StatusUnprocessableEntity,
			Err:     err,
		}
	}

	var rateLimited *llm.ErrRateLimit
	if errors.As(err, &rateLimited) {
		return &AppError{Code: ErrCodeRateLimited, Message: "the AI provider is rate limiting requests, try again shortly", Status: http.StatusTooManyRequests, Err: err}
	}
	var providerDown *llm.ErrProviderUnavailable
	if errors.As(err, &providerDown) {
		return &AppError{Code: ErrCodeUnavailable, Message: "the AI provider is unavailable, try again", Status: http.StatusBadGateway, Err: err}
	}

	return &AppError{Code: ErrCodeInternal, Message: "internal server error", Status: http.StatusInternalServerError, Err: err}
}

// handleError centralizes error responses.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr := mapError(err)

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
