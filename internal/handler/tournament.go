package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wrecklessracks/racks/internal/tournament"
)

// EntriesResponse lists an account's current tournament entries
type EntriesResponse struct {
	AccountID string      `json:"account_id"`
	Entries   interface{} `json:"entries"`
}

// HandleGetTournaments returns the tournament catalogue
func HandleGetTournaments(svc tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.Tournaments())
	}
}

// HandleJoinTournament pays the entry fee for the tournament named in the path
func HandleJoinTournament(svc tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req AccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Join tournament"); err != nil {
			return
		}

		join, err := svc.Join(r.Context(), req.AccountID, id)
		if err != nil {
			respondServiceError(w, r, ErrMsgJoinFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: join})
	}
}

// HandleGetPrizes returns a tournament's prize table in coins
func HandleGetPrizes(svc tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prizes, err := svc.Prizes(chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, ErrMsgGetPrizesFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, prizes)
	}
}

// HandleGetEntries returns the account's entries in current tournament runs
func HandleGetEntries(svc tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		entries, err := svc.Entries(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetEntriesFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, EntriesResponse{AccountID: id, Entries: entries})
	}
}
