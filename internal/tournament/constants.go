package tournament

// Catalogue IDs
const (
	SlotsChampionship = "slots-championship"
	BlackjackBlitz    = "blackjack-blitz"
	HighRoller        = "high-roller"
)

// Run key layouts
const (
	DailyRunLayout   = "2006-01-02"
	MonthlyRunLayout = "2006-01"
	WeeklyRunFormat  = "%d-W%02d"
)

// Log messages
const (
	LogMsgTournamentJoined = "Tournament joined"
)
