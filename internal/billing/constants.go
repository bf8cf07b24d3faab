package billing

import "github.com/wrecklessracks/racks/internal/domain"

// Package IDs
const (
	PackageStarter  = "starter"
	PackageValue    = "value"
	PackagePremium  = "premium"
	PackageUltimate = "ultimate"
	PackageWhale    = "whale"
)

// DefaultPackages is the coin package catalogue, cheapest first
var DefaultPackages = []domain.CoinPackage{
	{ID: PackageStarter, Name: "Starter Pack", Coins: 1_000, BonusCoins: 0, PriceCents: 99},
	{ID: PackageValue, Name: "Value Pack", Coins: 5_000, BonusCoins: 1_000, PriceCents: 499},
	{ID: PackagePremium, Name: "Premium Pack", Coins: 12_000, BonusCoins: 3_000, PriceCents: 999, Popular: true},
	{ID: PackageUltimate, Name: "Ultimate Pack", Coins: 25_000, BonusCoins: 7_500, PriceCents: 1999},
	{ID: PackageWhale, Name: "Whale Pack", Coins: 60_000, BonusCoins: 20_000, PriceCents: 4999},
}

// Log messages
const (
	LogMsgCoinsGranted = "Purchased coins granted"
)
