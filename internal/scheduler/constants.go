package scheduler

// Job names
const (
	JobJackpotRefresh = "jackpot_refresh"
	JobDailyRollover  = "daily_rollover"
)

// Log messages
const (
	LogMsgSchedulerStarted  = "Scheduler started"
	LogMsgSchedulerStopped  = "Scheduler stopped"
	LogMsgJobScheduled      = "Job scheduled"
	LogMsgJobSkipped        = "Scheduled job skipped"
	LogMsgJackpotRefreshed  = "Jackpot pool refreshed"
	LogMsgDailyRollover     = "Daily rollover"
	LogMsgJackpotReadFailed = "Failed to read jackpot pool"
)
