package bootstrap

import (
	"context"

	"github.com/wrecklessracks/racks/internal/account"
	"github.com/wrecklessracks/racks/internal/billing"
	"github.com/wrecklessracks/racks/internal/casino"
	"github.com/wrecklessracks/racks/internal/config"
	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/jackpot"
	"github.com/wrecklessracks/racks/internal/progression"
	"github.com/wrecklessracks/racks/internal/tournament"
)

// Services holds the application services built on one set of repositories
type Services struct {
	Account     account.Service
	Casino      casino.Service
	Progression progression.Service
	Billing     billing.Service
	Tournament  tournament.Service
	Jackpot     jackpot.Service
}

// InitializeServices wires the services and makes sure the jackpot pool exists.
// publisher may be nil, in which case no events are emitted.
func InitializeServices(ctx context.Context, cfg *config.Config, repos *Repositories, publisher event.Publisher) (*Services, error) {
	engine := progression.NewDefaultEngine(cfg.Location())
	board := tournament.NewDefaultBoard(cfg.Location())

	jackpots := jackpot.NewService(repos.Jackpot, jackpot.Config{
		PoolID:       domain.JackpotPoolMegaSlots,
		Initial:      cfg.JackpotInitial,
		Seed:         cfg.JackpotSeed,
		Contribution: cfg.JackpotIncrement,
	})
	if err := jackpots.Init(ctx); err != nil {
		return nil, err
	}

	casinoCfg := casino.Config{
		SessionTTL:      cfg.SessionTTL,
		SessionCapacity: cfg.SessionCapacity,
		Tournaments:     board,
	}

	return &Services{
		Account:     account.NewService(repos.Account, publisher),
		Casino:      casino.NewService(repos.Account, engine, jackpots, publisher, casinoCfg),
		Progression: progression.NewService(repos.Account, engine, publisher),
		Billing:     billing.NewService(repos.Account, engine, publisher),
		Tournament:  tournament.NewService(repos.Account, board, publisher),
		Jackpot:     jackpots,
	}, nil
}

// ShutdownOrder lists the services in the order they should stop. The casino goes
// first so auto-resolved hands still reach the publisher.
func (s *Services) ShutdownOrder() []NamedService {
	return []NamedService{
		{Name: ServiceNameCasino, Service: s.Casino},
		{Name: ServiceNameProgression, Service: s.Progression},
		{Name: ServiceNameBilling, Service: s.Billing},
		{Name: ServiceNameTournament, Service: s.Tournament},
		{Name: ServiceNameAccount, Service: s.Account},
	}
}
