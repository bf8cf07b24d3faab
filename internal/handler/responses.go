package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/logger"
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
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgInsufficientFundsErr = "Not enough coins"
	ErrMsgInvalidBetError      = "Bet amount is outside the table limits"
	ErrMsgInvalidRouletteErr   = "Invalid roulette bet"
	ErrMsgInvalidHoldError     = "Hold exactly five cards"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
	ErrMsgRoundInProgressError = "Finish your current round first"
	ErrMsgNoActiveRoundError   = "No open hand"
	ErrMsgAccountNotFoundError = "Account not found"
	ErrMsgAccountExistsError   = "Account already exists"
	ErrMsgUnknownPackageError  = "Unknown coin package"
	ErrMsgTournamentNotFound   = "Tournament not found"
	ErrMsgAlreadyEnteredError  = "Already entered in this tournament run"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages
// that users can act on. Anything unrecognized is a generic 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgInsufficientFundsErr
	case errors.Is(err, domain.ErrInvalidRouletteBet):
		return http.StatusBadRequest, ErrMsgInvalidRouletteErr
	case errors.Is(err, domain.ErrInvalidBetAmount):
		return http.StatusBadRequest, ErrMsgInvalidBetError
	case errors.Is(err, domain.ErrInvalidHold):
		return http.StatusBadRequest, ErrMsgInvalidHoldError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrUnknownPackage):
		return http.StatusBadRequest, ErrMsgUnknownPackageError
	case errors.Is(err, domain.ErrRoundInProgress):
		return http.StatusConflict, ErrMsgRoundInProgressError
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, ErrMsgAccountExistsError
	case errors.Is(err, domain.ErrAlreadyEntered):
		return http.StatusConflict, ErrMsgAlreadyEnteredError
	case errors.Is(err, domain.ErrNoActiveRound):
		return http.StatusNotFound, ErrMsgNoActiveRoundError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrTournamentNotFound):
		return http.StatusNotFound, ErrMsgTournamentNotFound
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
