package casino

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wrecklessracks/racks/internal/blackjack"
	"github.com/wrecklessracks/racks/internal/domain"
)

var printer = message.NewPrinter(language.English)

// formatMessage renders the player-facing line for a settled round
func formatMessage(r *domain.RoundResult) string {
	var msg string
	switch {
	case r.JackpotWon != nil:
		msg = printer.Sprintf(MsgFmtJackpot, *r.JackpotWon)
	case r.Outcome.PayoutMultiplierKind == blackjack.KindPlayerBust:
		msg = printer.Sprintf(MsgFmtBust, blackjack.HandValue(r.Outcome.RawDraw.Cards), r.Bet)
	case r.PayoutAmount == 0:
		msg = printer.Sprintf(MsgFmtLoss, r.Bet)
	case r.PayoutAmount == r.Bet:
		msg = printer.Sprintf(MsgFmtPush, r.Bet)
	case r.PayoutAmount < r.Bet:
		msg = printer.Sprintf(MsgFmtPartial, r.PayoutAmount)
	case r.PayoutAmount >= r.Bet*BigWinMultiple:
		msg = printer.Sprintf(MsgFmtBigWin, r.PayoutAmount, r.PayoutAmount-r.Bet)
	default:
		msg = printer.Sprintf(MsgFmtWin, r.PayoutAmount, r.PayoutAmount-r.Bet)
	}

	if r.FreeSpinsRemaining > 0 {
		msg += printer.Sprintf(MsgFmtFreeSpins, r.FreeSpinsRemaining, r.BonusMultiplier)
	}
	return msg
}

// FormatCoins renders an amount with thousands separators
func FormatCoins(n int64) string {
	return printer.Sprintf("%d", n)
}
