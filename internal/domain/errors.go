package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidBetAmount  = "invalid bet amount"
	ErrMsgInvalidPayout     = "invalid payout amount"

	// Card game errors
	ErrMsgEmptyDeck     = "deck is empty"
	ErrMsgInvalidHold   = "invalid hold selection"
	ErrMsgNoActiveRound = "no active round"

	// Round guard errors
	ErrMsgRoundInProgress = "round already in progress"

	// Progression errors
	ErrMsgDuplicateChallengeGrant = "challenge reward already granted"
	ErrMsgInvalidTable            = "invalid progression table"

	// Account errors
	ErrMsgAccountNotFound = "account not found"
	ErrMsgAccountExists   = "account already exists"

	// Roulette errors
	ErrMsgInvalidRouletteBet = "invalid roulette bet"

	// Billing errors
	ErrMsgUnknownPackage = "unknown coin package"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"

	// Jackpot errors
	ErrMsgJackpotPoolNotFound = "jackpot pool not found"

	// Tournament errors
	ErrMsgTournamentNotFound = "tournament not found"
	ErrMsgAlreadyEntered     = "already entered this tournament"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidBetAmount  = errors.New(ErrMsgInvalidBetAmount)
	ErrInvalidPayout     = errors.New(ErrMsgInvalidPayout)

	ErrEmptyDeck     = errors.New(ErrMsgEmptyDeck)
	ErrInvalidHold   = errors.New(ErrMsgInvalidHold)
	ErrNoActiveRound = errors.New(ErrMsgNoActiveRound)

	ErrRoundInProgress = errors.New(ErrMsgRoundInProgress)

	ErrDuplicateChallengeGrant = errors.New(ErrMsgDuplicateChallengeGrant)
	ErrInvalidTable            = errors.New(ErrMsgInvalidTable)

	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)
	ErrAccountExists   = errors.New(ErrMsgAccountExists)

	ErrInvalidRouletteBet = errors.New(ErrMsgInvalidRouletteBet)

	ErrUnknownPackage = errors.New(ErrMsgUnknownPackage)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrTxClosed = errors.New(ErrMsgTxClosed)

	ErrJackpotPoolNotFound = errors.New(ErrMsgJackpotPoolNotFound)

	ErrTournamentNotFound = errors.New(ErrMsgTournamentNotFound)
	ErrAlreadyEntered     = errors.New(ErrMsgAlreadyEntered)
)
