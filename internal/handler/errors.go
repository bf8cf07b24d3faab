package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"

	ErrMsgRegisterFailed     = "Failed to create account"
	ErrMsgGetAccountFailed   = "Failed to get account"
	ErrMsgSpinFailed         = "Failed to process spin"
	ErrMsgDealFailed         = "Failed to deal hand"
	ErrMsgHandActionFailed   = "Failed to play hand"
	ErrMsgClaimFailed        = "Failed to claim bonus"
	ErrMsgGetProfileFailed   = "Failed to retrieve VIP profile"
	ErrMsgGetChallengeFailed = "Failed to retrieve challenges"
	ErrMsgGetJackpotFailed   = "Failed to retrieve jackpot"
	ErrMsgPurchaseFailed     = "Failed to complete purchase"
	ErrMsgJoinFailed         = "Failed to join tournament"
	ErrMsgGetEntriesFailed   = "Failed to retrieve tournament entries"
	ErrMsgGetPrizesFailed    = "Failed to retrieve prizes"
)

// Success messages for API responses
const (
	MsgAccountCreated      = "Account created"
	MsgDailyAlreadyClaimed = "Daily bonus already claimed today"
	MsgNoCashback          = "No cashback accrued"
	MsgHourlyNotReady      = "Hourly bonus not ready yet"
)
