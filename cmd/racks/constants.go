package main

import "time"

const closeTimeout = 10 * time.Second

// Blackjack prompt answers
const (
	answerHit   = "h"
	answerStand = "s"
)

// Output lines
const (
	MsgAccountCreated   = "Created account %s with %s coins\n"
	MsgBalance          = "Balance: %s coins\n"
	MsgRoundMessage     = "%s\n"
	MsgTierChanged      = "VIP tier is now %s\n"
	MsgChallengeDone    = "Challenge complete: %s (+%s coins)\n"
	MsgJackpot          = "Mega Slots jackpot: %s coins (reseeds at %s)\n"
	MsgDailyClaimed     = "Daily bonus: +%s coins, %d day streak\n"
	MsgDailyAlready     = "Daily bonus already claimed for %s\n"
	MsgCashbackClaimed  = "Cashback: +%s coins\n"
	MsgHourlyClaimed    = "Hourly bonus: +%s coins\n"
	MsgHourlyNotReady   = "Hourly bonus opens at %s\n"
	MsgTournamentLine   = "  %-20s %-26s %-8s entry %6s  pool %8s\n"
	MsgTournamentJoined = "Joined %s (run %s) for %s coins\n"
	MsgTournamentEntry  = "  %-20s run %-10s score %8s  rounds %d\n"
	MsgNoEntries        = "No current tournament entries\n"
	MsgPrizeLine        = "  %-10s %8s coins\n"
	MsgPurchase         = "Purchased %s coins\n"
	MsgReels            = "Reels: %s\n"
	MsgPocket           = "Ball landed on %d %s\n"
	MsgRouletteBet      = "  %-10s %8s  %s\n"
	MsgHand             = "Your hand: %s\n"
	MsgHandValue        = "Your hand: %s (%d)\n"
	MsgDealerUp         = "Dealer shows: %s\n"
	MsgDealerHand       = "Dealer hand: %s\n"
	MsgBlackjackPrompt  = "[h]it or [s]tand? "
	MsgPokerPrompt      = "Positions to hold (e.g. 1 3 5, blank for none): "
	MsgFreeSpin         = "Free spin (%d left)\n"
	MsgStatusHeader     = "Account %s\n"
	MsgStatusTier       = "VIP tier: %s (%s points)\n"
	MsgStatusNextTier   = "Next tier: %s at %.1f%%\n"
	MsgStatusTop        = "Top tier reached\n"
	MsgStatusDaily      = "Daily bonus: %s\n"
	MsgStatusCashback   = "Cashback pending: %s coins\n"
	MsgStatusFreeSpins  = "Free spins: %d at x%d\n"
	MsgStatusChallenges = "Challenges: %d of %d complete\n"
	MsgStatusChallenge  = "  [%s] %-16s %s/%s\n"
	MsgPackageLine      = "  %-10s %-14s %10s coins  $%d.%02d\n"
	MsgNoDeadLetters    = "No undelivered events in %s\n"
	MsgDeadLetterLine   = "%s  %-22s %-12s attempts=%d  %s\n"
	MsgDeadLetterTotal  = "%d undelivered events\n"
)

// Daily bonus status words
const (
	dailyReady   = "ready to claim"
	dailyClaimed = "claimed"
)
