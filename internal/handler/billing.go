package handler

import (
	"net/http"

	"github.com/wrecklessracks/racks/internal/billing"
	"github.com/wrecklessracks/racks/internal/logger"
)

// CompletePurchaseRequest settles a finished purchase. Exactly one of package_id and
// coins is set; payment is not verified here.
type CompletePurchaseRequest struct {
	AccountID string `json:"account_id" validate:"required,max=64,accountid"`
	PackageID string `json:"package_id" validate:"omitempty,max=32"`
	Coins     int64  `json:"coins" validate:"min=0"`
}

// HandleGetPackages lists the coin catalogue
func HandleGetPackages(svc billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.Packages())
	}
}

// HandleCompletePurchase credits purchased coins
func HandleCompletePurchase(svc billing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompletePurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Complete purchase"); err != nil {
			return
		}
		if (req.PackageID == "") == (req.Coins == 0) {
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  ErrMsgInvalidRequestSummary,
				Fields: map[string]string{"package_id": "Set exactly one of package_id and coins"},
			})
			return
		}
		LogRequestFields(logger.FromContext(r.Context()), "account_id", req.AccountID, "package_id", req.PackageID, "coins", req.Coins)

		var err error
		var result interface{}
		if req.PackageID != "" {
			result, err = svc.CompletePackage(r.Context(), req.AccountID, req.PackageID)
		} else {
			result, err = svc.CompletePurchase(r.Context(), req.AccountID, req.Coins)
		}
		if err != nil {
			respondServiceError(w, r, ErrMsgPurchaseFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
