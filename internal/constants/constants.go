package constants

import "time"

// Centralized constants for env keys, routes, battle tuning and logging.
const (
	// Environment variable keys
	EnvConfigPath = "BATTLEFORGE_CONFIG"
	EnvDBPath     = "BATTLEFORGE_DB"
	EnvAddress    = "BATTLEFORGE_ADDR"
	EnvDebug      = "BATTLEFORGE_DEBUG"

	// Defaults
	DefaultConfigPath = "./battleforge_config.json"
	DefaultDBPath     = "./data/battleforge.db"
	DefaultAddress    = ":8080"
)

// Battle tuning defaults. Config entries may override per battle type.
const (
	DefaultMaxTurns      = 50
	DefaultActionTimeout = 30 * time.Second

	// DefaultEnvironmentID is the fallback arena when a battle references
	// an unknown environment id.
	DefaultEnvironmentID = "training_grounds"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteVersion       = "/version"
	RouteBattles       = "/battles"
	RouteBattleByID    = "/battles/:battleID"
	RouteBattleAction  = "/battles/:battleID/action"
	RouteBattleAITurn  = "/battles/:battleID/ai-turn"
	RouteBattleAbandon = "/battles/:battleID/abandon"
	RouteBattlePause   = "/battles/:battleID/pause"
	RouteBattleResume  = "/battles/:battleID/resume"
	RouteBattleLog     = "/battles/:battleID/log"
	RouteRecords       = "/records"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyBattle  = "battle"
	JSONKeyLog     = "log"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest       = "Invalid request"
	ErrInvalidBattleID      = "Invalid battle ID"
	ErrBattleNotFound       = "Battle not found"
	ErrBattleNotActive      = "Battle is not active"
	ErrNotYourTurn          = "It is not this participant's turn"
	ErrActionRejected       = "Action rejected"
	ErrFailedCreateBattle   = "Failed to create battle"
	ErrFailedUpdateBattle   = "Failed to update battle"
	ErrFailedFetchBattle    = "Failed to fetch battle"
	ErrFailedFetchRecords   = "Failed to fetch records"
	ErrFailedFetchLog       = "Failed to fetch combat log"
	ErrRosterRequired       = "Both rosters must contain at least one character"
	ErrBattleNotCompletable = "Battle could not be completed"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldActorID  = "actor_id"
	LogFieldActionID = "action_id"
	LogFieldTurn     = "turn"
	LogFieldWinner   = "winner"
	LogFieldReason   = "reason"
	LogFieldAddr     = "addr"
	LogFieldWorkerID = "worker_id"
	LogFieldEnvID    = "environment_id"
)
