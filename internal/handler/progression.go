package handler

import (
	"net/http"

	"github.com/wrecklessracks/racks/internal/progression"
)

// ChallengesResponse lists an account's challenge progress
type ChallengesResponse struct {
	AccountID  string      `json:"account_id"`
	Challenges interface{} `json:"challenges"`
}

// HandleClaimDaily claims the tier's daily bonus. A second claim on the same day is
// not an error; the response reports claimed=false.
func HandleClaimDaily(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim daily bonus"); err != nil {
			return
		}

		claim, err := svc.ClaimDailyBonus(r.Context(), req.AccountID)
		if err != nil {
			respondServiceError(w, r, ErrMsgClaimFailed, err)
			return
		}

		if !claim.Claimed {
			respondJSON(w, http.StatusOK, DataResponse{Message: MsgDailyAlreadyClaimed, Data: claim})
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: claim})
	}
}

// HandleClaimHourly claims the flat hourly bonus. An early claim reports claimed=false
// with the time the next claim opens.
func HandleClaimHourly(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim hourly bonus"); err != nil {
			return
		}

		claim, err := svc.ClaimHourlyBonus(r.Context(), req.AccountID)
		if err != nil {
			respondServiceError(w, r, ErrMsgClaimFailed, err)
			return
		}

		if !claim.Claimed {
			respondJSON(w, http.StatusOK, DataResponse{Message: MsgHourlyNotReady, Data: claim})
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: claim})
	}
}

// HandleClaimCashback credits the accrued cashback
func HandleClaimCashback(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim cashback"); err != nil {
			return
		}

		claim, err := svc.ClaimCashback(r.Context(), req.AccountID)
		if err != nil {
			respondServiceError(w, r, ErrMsgClaimFailed, err)
			return
		}

		if claim.Amount == 0 {
			respondJSON(w, http.StatusOK, DataResponse{Message: MsgNoCashback, Data: claim})
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: claim})
	}
}

// HandleGetVIP returns the account's VIP standing
func HandleGetVIP(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		profile, err := svc.GetProfile(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetProfileFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleGetChallenges returns progress on every challenge
func HandleGetChallenges(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		challenges, err := svc.GetChallenges(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetChallengeFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, ChallengesResponse{AccountID: id, Challenges: challenges})
	}
}

// HandleGetTiers returns the VIP ladder
func HandleGetTiers(svc progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.Tiers())
	}
}
