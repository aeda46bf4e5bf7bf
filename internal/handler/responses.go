package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/garden"
	"github.com/osse101/GardenKeeper_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode first so an unencodable payload still yields a clean 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto a status code and message.
// Internal failures answer with failMsg instead of the error text.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, op, failMsg string) {
	status, msg := mapServiceErrorToUserMessage(err)
	if status == http.StatusInternalServerError && failMsg != "" {
		msg = failMsg
	}

	log := logger.FromContext(r.Context())
	if garden.IsClientError(err) {
		log.Debug(LogMsgServiceError, "op", op, "status", status, "error", err)
	} else {
		log.Error(LogMsgServiceError, "op", op, "status", status, "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgUnavailableError   = "Chain is temporarily unavailable. Please try again later."

	ErrMsgInvalidPlayerError   = "That is not a valid wallet address"
	ErrMsgInvalidPlotError     = "That plot does not exist"
	ErrMsgInvalidCellError     = "Cell index must be between 0 and 11"
	ErrMsgPlotLockedError      = "That plot is locked"
	ErrMsgSeedNotSelectedError = "Select a seed first"
	ErrMsgSeedNotFoundError    = "Seed not found"
	ErrMsgSeedInactiveError    = "That seed is not available"
	ErrMsgNoSeedBalanceError   = "You have no seeds of that type"
	ErrMsgInvalidQuantityError = "Quantity must be positive"
	ErrMsgSnapshotNotFoundErr  = "No history for that cell"
	ErrMsgTokenNotConfiguredEr = "Garden token is not configured"
	ErrMsgWatchLimitError      = "Too many plots are watched already"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPlayer):
		return http.StatusBadRequest, ErrMsgInvalidPlayerError
	case errors.Is(err, domain.ErrInvalidPlot):
		return http.StatusBadRequest, ErrMsgInvalidPlotError
	case errors.Is(err, domain.ErrInvalidCell):
		return http.StatusBadRequest, ErrMsgInvalidCellError
	case errors.Is(err, domain.ErrPlotLocked):
		return http.StatusForbidden, ErrMsgPlotLockedError
	case errors.Is(err, domain.ErrSeedNotSelected):
		return http.StatusBadRequest, ErrMsgSeedNotSelectedError
	case errors.Is(err, domain.ErrSeedNotFound):
		return http.StatusNotFound, ErrMsgSeedNotFoundError
	case errors.Is(err, domain.ErrSeedInactive):
		return http.StatusConflict, ErrMsgSeedInactiveError
	case errors.Is(err, domain.ErrNoSeedBalance):
		return http.StatusConflict, ErrMsgNoSeedBalanceError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityError
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound, ErrMsgSnapshotNotFoundErr
	case errors.Is(err, domain.ErrTokenNotConfigured):
		return http.StatusNotFound, ErrMsgTokenNotConfiguredEr
	case errors.Is(err, domain.ErrWatchLimitReached):
		return http.StatusConflict, ErrMsgWatchLimitError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrChainUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
