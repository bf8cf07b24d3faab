package postgres

// Postgres error codes mapped to domain errors
const (
	pgCodeUniqueViolation = "23505"
	pgCodeCheckViolation  = "23514"
)

const accountColumns = `account_id, balance, cumulative_wagered, peak_tier, last_daily_claim,
	last_hourly_claim, cashback_accrued, stats, challenges, bonus, tournaments, created_at, updated_at`

// Error messages
const (
	ErrMsgFailedToInsertAccount = "failed to insert account"
	ErrMsgFailedToQueryAccount  = "failed to query account"
	ErrMsgFailedToUpdateAccount = "failed to update account"
	ErrMsgFailedToQueryJackpot  = "failed to query jackpot pool"
	ErrMsgFailedToUpdateJackpot = "failed to update jackpot pool"
)
