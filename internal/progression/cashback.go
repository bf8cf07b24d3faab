package progression

import (
	"github.com/shopspring/decimal"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/ledger"
)

// CashbackFor returns the cashback a losing round earns at the given rate, rounded down
func CashbackFor(rate decimal.Decimal, bet, payout int64) int64 {
	loss := bet - payout
	if loss <= 0 || !rate.IsPositive() {
		return 0
	}
	return decimal.NewFromInt(loss).Mul(rate).Floor().IntPart()
}

// AccrueCashback adds the cashback for a paid round at the account's current tier
func (e *Engine) AccrueCashback(acct *domain.Account, bet, payout int64) int64 {
	amount := CashbackFor(e.CurrentTier(acct).CashbackRate, bet, payout)
	acct.CashbackAccrued += amount
	return amount
}

// ClaimCashback moves accrued cashback into the balance
func (e *Engine) ClaimCashback(acct *domain.Account) (domain.CashbackClaim, error) {
	claim := domain.CashbackClaim{AccountID: acct.ID, NewBalance: acct.Balance}
	if acct.CashbackAccrued <= 0 {
		return claim, nil
	}
	if err := ledger.Credit(acct, acct.CashbackAccrued); err != nil {
		return claim, err
	}
	claim.Amount = acct.CashbackAccrued
	claim.NewBalance = acct.Balance
	acct.CashbackAccrued = 0
	return claim, nil
}
