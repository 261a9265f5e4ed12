package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
)

const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// MaxCombatants is the roster capacity of a battle session.
	MaxCombatants = 2

	// DeltaDivisor normalizes the absolute score gap before it is
	// clamped into [0,1] as the upset handicap.
	DeltaDivisor = 100.0
)
