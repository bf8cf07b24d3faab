package handler

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/wrecklessracks/racks/internal/casino"
	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/poker"
	"github.com/wrecklessracks/racks/internal/roulette"
)

// GamesHandler handles every game route
type GamesHandler struct {
	service casino.Service
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(service casino.Service) *GamesHandler {
	return &GamesHandler{service: service}
}

// BetRequest is a single-stake game action. Table limits are checked by the game.
type BetRequest struct {
	AccountID string `json:"account_id" validate:"required,max=64,accountid"`
	Bet       int64  `json:"bet" validate:"gt=0"`
}

// MegaSpinRequest may omit the bet while free spins are pending
type MegaSpinRequest struct {
	AccountID string `json:"account_id" validate:"required,max=64,accountid"`
	Bet       int64  `json:"bet" validate:"min=0"`
}

// AccountRequest is a follow-up action on an open hand
type AccountRequest struct {
	AccountID string `json:"account_id" validate:"required,max=64,accountid"`
}

// RouletteBetRequest is one chip placement
type RouletteBetRequest struct {
	Type   string `json:"type" validate:"required,oneof=straight red black even odd low high first12 second12 third12"`
	Number int    `json:"number" validate:"min=0,max=36"`
	Amount int64  `json:"amount" validate:"gt=0"`
}

// RouletteSpinRequest places a set of bets on one spin
type RouletteSpinRequest struct {
	AccountID string               `json:"account_id" validate:"required,max=64,accountid"`
	Bets      []RouletteBetRequest `json:"bets" validate:"required,min=1,max=20,dive"`
}

// PokerDrawRequest marks which of the five dealt cards to keep
type PokerDrawRequest struct {
	AccountID string `json:"account_id" validate:"required,max=64,accountid"`
	Holds     []bool `json:"holds" validate:"len=5"`
}

// HandleSpinSlots plays one 3-reel spin
func (h *GamesHandler) HandleSpinSlots(w http.ResponseWriter, r *http.Request) {
	var req BetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin slots"); err != nil {
		return
	}

	result, err := h.service.SpinSlots(r.Context(), req.AccountID, req.Bet)
	if err != nil {
		respondServiceError(w, r, ErrMsgSpinFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleSpinMegaSlots plays one 5-reel spin, or the next pending free spin
func (h *GamesHandler) HandleSpinMegaSlots(w http.ResponseWriter, r *http.Request) {
	var req MegaSpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin mega slots"); err != nil {
		return
	}

	result, err := h.service.SpinMegaSlots(r.Context(), req.AccountID, req.Bet)
	if err != nil {
		respondServiceError(w, r, ErrMsgSpinFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleSpinRoulette settles a set of bets on one spin
func (h *GamesHandler) HandleSpinRoulette(w http.ResponseWriter, r *http.Request) {
	var req RouletteSpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin roulette"); err != nil {
		return
	}

	bets := lo.Map(req.Bets, func(b RouletteBetRequest, _ int) roulette.Bet {
		return roulette.Bet{Kind: roulette.BetKind(b.Type), Number: b.Number, Amount: b.Amount}
	})
	LogRequestFields(logger.FromContext(r.Context()), "account_id", req.AccountID, "bets", len(bets))

	result, err := h.service.SpinRoulette(r.Context(), req.AccountID, bets)
	if err != nil {
		respondServiceError(w, r, ErrMsgSpinFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleDealBlackjack opens a blackjack hand
func (h *GamesHandler) HandleDealBlackjack(w http.ResponseWriter, r *http.Request) {
	var req BetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Deal blackjack"); err != nil {
		return
	}

	hand, err := h.service.DealBlackjack(r.Context(), req.AccountID, req.Bet)
	if err != nil {
		respondServiceError(w, r, ErrMsgDealFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, hand)
}

// HandleHitBlackjack draws a card; a bust settles the hand
func (h *GamesHandler) HandleHitBlackjack(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Hit blackjack"); err != nil {
		return
	}

	hand, err := h.service.HitBlackjack(r.Context(), req.AccountID)
	if err != nil {
		respondServiceError(w, r, ErrMsgHandActionFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, hand)
}

// HandleStandBlackjack plays the dealer and settles
func (h *GamesHandler) HandleStandBlackjack(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Stand blackjack"); err != nil {
		return
	}

	result, err := h.service.StandBlackjack(r.Context(), req.AccountID)
	if err != nil {
		respondServiceError(w, r, ErrMsgHandActionFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleDealPoker deals five cards
func (h *GamesHandler) HandleDealPoker(w http.ResponseWriter, r *http.Request) {
	var req BetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Deal poker"); err != nil {
		return
	}

	hand, err := h.service.DealPoker(r.Context(), req.AccountID, req.Bet)
	if err != nil {
		respondServiceError(w, r, ErrMsgDealFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, hand)
}

// HandleDrawPoker replaces the unheld cards and settles
func (h *GamesHandler) HandleDrawPoker(w http.ResponseWriter, r *http.Request) {
	var req PokerDrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Draw poker"); err != nil {
		return
	}

	var holds [poker.HandSize]bool
	copy(holds[:], req.Holds)

	result, err := h.service.DrawPoker(r.Context(), req.AccountID, holds)
	if err != nil {
		respondServiceError(w, r, ErrMsgHandActionFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleGetActiveRound returns the account's open hand
func (h *GamesHandler) HandleGetActiveRound(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	hand, err := h.service.ActiveRound(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgHandActionFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, hand)
}

// HandleGetJackpot returns the current progressive pool
func (h *GamesHandler) HandleGetJackpot(w http.ResponseWriter, r *http.Request) {
	pool, err := h.service.JackpotPool(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetJackpotFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, pool)
}
