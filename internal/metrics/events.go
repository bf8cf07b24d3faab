package metrics

import (
	"context"

	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every event type the engine publishes
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, e.HandleEvent, event.AllTypes...)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := e.record(evt); err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) record(evt event.Event) error {
	switch evt.Type {
	case event.RoundSettled:
		p, err := event.DecodePayload[event.RoundSettledPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		game := string(p.Game)
		RoundsSettled.WithLabelValues(game, roundResult(p.Bet, p.Payout)).Inc()
		CoinsPaidOut.WithLabelValues(game).Add(float64(p.Payout))
		if p.FreeSpin {
			FreeSpins.Inc()
		} else {
			CoinsWagered.WithLabelValues(game).Add(float64(p.Bet))
		}

	case event.SessionAutoResolved:
		p, err := event.DecodePayload[event.RoundSettledPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		RoundsAutoResolved.WithLabelValues(string(p.Game)).Inc()

	case event.JackpotAwarded:
		p, err := event.DecodePayload[event.JackpotAwardedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		JackpotsAwarded.WithLabelValues(p.PoolID).Inc()
		JackpotCoinsAwarded.WithLabelValues(p.PoolID).Add(float64(p.Amount))

	case event.JackpotRefreshed:
		p, err := event.DecodePayload[event.JackpotRefreshedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		JackpotPool.WithLabelValues(p.PoolID).Set(float64(p.Amount))

	case event.VIPTierChanged:
		p, err := event.DecodePayload[event.VIPTierChangedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		TierPromotions.WithLabelValues(p.TierName).Inc()

	case event.ChallengeCompleted:
		p, err := event.DecodePayload[event.ChallengeCompletedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		ChallengesCompleted.WithLabelValues(p.ChallengeID).Inc()

	case event.DailyBonusClaimed, event.HourlyBonusClaimed, event.CashbackClaimed:
		p, err := event.DecodePayload[event.BonusClaimedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		bonus := BonusDaily
		switch evt.Type {
		case event.HourlyBonusClaimed:
			bonus = BonusHourly
		case event.CashbackClaimed:
			bonus = BonusCashback
		}
		BonusClaims.WithLabelValues(bonus).Inc()
		BonusCoins.WithLabelValues(bonus).Add(float64(p.Amount))

	case event.BillingCoinsGranted:
		p, err := event.DecodePayload[event.CoinsGrantedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		CoinsPurchased.WithLabelValues(p.PackageID).Add(float64(p.Coins))

	case event.TournamentJoined:
		p, err := event.DecodePayload[event.TournamentJoinedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		TournamentEntries.WithLabelValues(p.TournamentID).Inc()
		TournamentFees.WithLabelValues(p.TournamentID).Add(float64(p.EntryFee))

	case event.AccountRegistered:
		AccountsRegistered.Inc()
	}
	return nil
}

func roundResult(bet, payout int64) string {
	switch {
	case payout > bet:
		return ResultWin
	case payout == bet:
		return ResultPush
	default:
		return ResultLoss
	}
}
