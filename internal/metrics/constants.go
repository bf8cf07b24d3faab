package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameRoundsSettled       = "rounds_settled_total"
	MetricNameCoinsWagered        = "coins_wagered_total"
	MetricNameCoinsPaidOut        = "coins_paid_out_total"
	MetricNameFreeSpins           = "free_spins_total"
	MetricNameRoundsAutoResolved  = "rounds_auto_resolved_total"
	MetricNameJackpotPool         = "jackpot_pool_coins"
	MetricNameJackpotsAwarded     = "jackpots_awarded_total"
	MetricNameJackpotCoinsAwarded = "jackpot_coins_awarded_total"
	MetricNameTierPromotions      = "vip_tier_promotions_total"
	MetricNameChallenges          = "challenges_completed_total"
	MetricNameBonusClaims         = "bonus_claims_total"
	MetricNameBonusCoins          = "bonus_coins_total"
	MetricNameCoinsPurchased      = "coins_purchased_total"
	MetricNameAccountsRegistered  = "accounts_registered_total"
	MetricNameTournamentEntries   = "tournament_entries_total"
	MetricNameTournamentFees      = "tournament_fees_coins_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextRoundsSettled       = "Total number of settled game rounds"
	HelpTextCoinsWagered        = "Total coins staked on paid rounds"
	HelpTextCoinsPaidOut        = "Total coins returned by settled rounds, jackpots included"
	HelpTextFreeSpins           = "Total number of Mega Slots free spins played"
	HelpTextRoundsAutoResolved  = "Total number of abandoned hands settled by the engine"
	HelpTextJackpotPool         = "Current progressive jackpot pool"
	HelpTextJackpotsAwarded     = "Total number of progressive jackpots won"
	HelpTextJackpotCoinsAwarded = "Total coins paid from progressive jackpots"
	HelpTextTierPromotions      = "Total number of VIP tier promotions"
	HelpTextChallenges          = "Total number of challenges and achievements completed"
	HelpTextBonusClaims         = "Total number of daily, hourly and cashback bonus claims"
	HelpTextBonusCoins          = "Total coins granted by bonus claims"
	HelpTextCoinsPurchased      = "Total purchased coins granted"
	HelpTextAccountsRegistered  = "Total number of registered accounts"
	HelpTextTournamentEntries   = "Total number of tournament entries"
	HelpTextTournamentFees      = "Total coins paid as tournament entry fees"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelGame      = "game"
	LabelResult    = "result"
	LabelPool      = "pool"
	LabelTier      = "tier"
	LabelChallenge = "challenge"
	LabelBonus     = "bonus"
	LabelPackage   = "package"
	LabelTourney   = "tournament"
)

// Round result label values
const (
	ResultWin  = "win"
	ResultPush = "push"
	ResultLoss = "loss"
)

// Bonus label values
const (
	BonusDaily    = "daily"
	BonusHourly   = "hourly"
	BonusCashback = "cashback"
)

// UnmatchedRoute labels requests chi could not route
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
