package account

// DefaultStartingBalance is credited to every new account
const DefaultStartingBalance = 10_000

// Log messages
const (
	LogMsgAccountRegistered = "Account registered"
	LogMsgBalanceSet        = "Balance overwritten"
)
