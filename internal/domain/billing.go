package domain

// CoinPackage is a purchasable bundle of virtual coins
type CoinPackage struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Coins      int64  `json:"coins"`
	BonusCoins int64  `json:"bonus_coins"`
	PriceCents int64  `json:"price_cents"`
	Popular    bool   `json:"popular,omitempty"`
}

// Total is the number of coins granted for the package
func (p CoinPackage) Total() int64 {
	return p.Coins + p.BonusCoins
}

// PurchaseResult is returned after purchased coins settle
type PurchaseResult struct {
	AccountID    string                `json:"account_id"`
	CoinsGranted int64                 `json:"coins_granted"`
	NewBalance   int64                 `json:"new_balance"`
	Completed    []ChallengeCompletion `json:"challenges_completed"`
}
