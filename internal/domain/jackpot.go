package domain

// Jackpot pool identifiers
const (
	JackpotPoolMegaSlots = "mega_slots"
)

// ProgressiveJackpot is a shared pool snapshot
type ProgressiveJackpot struct {
	PoolID string `json:"pool_id"`
	Amount int64  `json:"amount"`
	Seed   int64  `json:"seed"`
}
