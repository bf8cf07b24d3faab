package handler

import (
	"net/http"

	"github.com/wrecklessracks/racks/internal/account"
	"github.com/wrecklessracks/racks/internal/logger"
)

// CreateAccountRequest opens a new account
type CreateAccountRequest struct {
	AccountID string `json:"account_id" validate:"required,max=64,accountid"`
}

// AccountResponse is the public view of an account
type AccountResponse struct {
	AccountID         string `json:"account_id"`
	Balance           int64  `json:"balance"`
	CumulativeWagered int64  `json:"cumulative_wagered"`
	FreeSpins         int    `json:"free_spins_remaining"`
}

// HandleCreateAccount registers an account with the configured starting balance
func HandleCreateAccount(svc account.Service, startingBalance int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create account"); err != nil {
			return
		}

		acct, err := svc.Register(r.Context(), req.AccountID, startingBalance)
		if err != nil {
			respondServiceError(w, r, ErrMsgRegisterFailed, err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{
			Message: MsgAccountCreated,
			Data: AccountResponse{
				AccountID: acct.ID,
				Balance:   acct.Balance,
			},
		})
	}
}

// HandleGetAccount returns an account's balance
func HandleGetAccount(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}
		LogRequestFields(logger.FromContext(r.Context()), "account_id", id)

		acct, err := svc.Get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetAccountFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, AccountResponse{
			AccountID:         acct.ID,
			Balance:           acct.Balance,
			CumulativeWagered: acct.CumulativeWagered,
			FreeSpins:         acct.Bonus.FreeSpinsRemaining,
		})
	}
}
