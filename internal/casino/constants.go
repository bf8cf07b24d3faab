package casino

import "time"

// Session defaults
const (
	DefaultSessionTTL      = 10 * time.Minute
	DefaultSessionCapacity = 10_000
)

// Log messages
const (
	LogMsgRoundSettled        = "Round settled"
	LogMsgHandDealt           = "Hand dealt"
	LogMsgSessionAutoResolved = "Open hand auto-resolved"
	LogMsgAutoResolveFailed   = "Failed to auto-resolve open hand"
	LogMsgJackpotRevertFailed = "Failed to revert jackpot writes for failed round"
	LogMsgFreeSpin            = "Free spin played"
)

// Result message formats. Rendered with an English printer so amounts get thousands separators.
const (
	MsgFmtLoss      = "No win this time. You lost %d coins."
	MsgFmtPush      = "Push. Your %d coins are returned."
	MsgFmtWin       = "You won %d coins (net +%d)!"
	MsgFmtBigWin    = "BIG WIN! You won %d coins (net +%d)!"
	MsgFmtPartial   = "You got %d coins back."
	MsgFmtJackpot   = "JACKPOT! You won the %d coin progressive pool!"
	MsgFmtFreeSpins = " %d free spins at %dx remaining."
	MsgFmtBust      = "Bust with %d. You lost %d coins."
)

// BigWinMultiple marks a payout worth a louder message
const BigWinMultiple = 10
