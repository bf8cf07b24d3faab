package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	RoundsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsSettled,
			Help: HelpTextRoundsSettled,
		},
		[]string{LabelGame, LabelResult},
	)

	CoinsWagered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsWagered,
			Help: HelpTextCoinsWagered,
		},
		[]string{LabelGame},
	)

	CoinsPaidOut = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsPaidOut,
			Help: HelpTextCoinsPaidOut,
		},
		[]string{LabelGame},
	)

	FreeSpins = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameFreeSpins,
			Help: HelpTextFreeSpins,
		},
	)

	RoundsAutoResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsAutoResolved,
			Help: HelpTextRoundsAutoResolved,
		},
		[]string{LabelGame},
	)
)

// Jackpot Metrics
var (
	JackpotPool = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameJackpotPool,
			Help: HelpTextJackpotPool,
		},
		[]string{LabelPool},
	)

	JackpotsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJackpotsAwarded,
			Help: HelpTextJackpotsAwarded,
		},
		[]string{LabelPool},
	)

	JackpotCoinsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJackpotCoinsAwarded,
			Help: HelpTextJackpotCoinsAwarded,
		},
		[]string{LabelPool},
	)
)

// Progression and economy Metrics
var (
	TierPromotions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTierPromotions,
			Help: HelpTextTierPromotions,
		},
		[]string{LabelTier},
	)

	ChallengesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChallenges,
			Help: HelpTextChallenges,
		},
		[]string{LabelChallenge},
	)

	BonusClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBonusClaims,
			Help: HelpTextBonusClaims,
		},
		[]string{LabelBonus},
	)

	BonusCoins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBonusCoins,
			Help: HelpTextBonusCoins,
		},
		[]string{LabelBonus},
	)

	CoinsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsPurchased,
			Help: HelpTextCoinsPurchased,
		},
		[]string{LabelPackage},
	)

	AccountsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAccountsRegistered,
			Help: HelpTextAccountsRegistered,
		},
	)

	TournamentEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTournamentEntries,
			Help: HelpTextTournamentEntries,
		},
		[]string{LabelTourney},
	)

	TournamentFees = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTournamentFees,
			Help: HelpTextTournamentFees,
		},
		[]string{LabelTourney},
	)
)
