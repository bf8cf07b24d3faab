package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToEncodeState      = "failed to encode account state"
	ErrMsgFailedToDecodeState      = "failed to decode account state"
	ErrMsgFailedToRunMigrations    = "failed to run migrations"
	ErrMsgFailedToOpenSQLite       = "failed to open sqlite database"
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
	LogMsgFailedToRollbackTransaction     = "Failed to rollback transaction"
)
