package storage

import (
	"time"

	"github.com/soltgard/battleforge/internal/game"
)

// Repository is the persistence boundary of the battle core. The engine
// never persists anything itself; the service layer loads a battle, runs
// the simulation against it and writes it back through this interface.
type Repository interface {
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	// ListActiveBattles returns battles still in a non-terminal status,
	// most recent first.
	ListActiveBattles(limit int) ([]game.Battle, error)

	// GetCombatLog returns a battle's log entries in append order, for
	// UI replay.
	GetCombatLog(battleID uint) ([]game.CombatLogEntry, error)

	// SaveCombatRecord stores the one post-battle summary. The unique
	// index on battle id makes a double write fail loudly.
	SaveCombatRecord(r *game.CombatRecord) error
	ListCombatRecords(limit int) ([]game.CombatRecord, error)

	// FindTimedOutBattles returns battles that are active and whose
	// action deadline is at or before the provided time. The caller
	// decides how to resolve them (auto-playing the stalled actor).
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)
}
