package jackpot

// Pool defaults
const (
	DefaultSeed         = 50_000
	DefaultInitial      = DefaultSeed
	DefaultContribution = 25 // Added per paid Mega Slots spin
)

// Log messages
const (
	LogMsgJackpotAwarded  = "Progressive jackpot awarded"
	LogMsgPoolReady       = "Jackpot pool ready"
	LogMsgJackpotReverted = "Jackpot writes reverted for failed round"
)
