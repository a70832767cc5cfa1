package service

import (
	"errors"
	"time"

	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/engine"
	"github.com/soltgard/battleforge/internal/game"
	"github.com/soltgard/battleforge/internal/logging"
)

// BattleRepo is the minimal repository interface the battle services need.
// Using a small interface simplifies testing.
type BattleRepo interface {
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	SaveCombatRecord(r *game.CombatRecord) error
}

var (
	ErrBattleNotFound     = errors.New("battle not found")
	ErrBattleNotActive    = errors.New("battle is not active")
	ErrBattleNotPaused    = errors.New("battle is not paused")
	ErrEmptyRoster        = errors.New("both rosters must contain at least one character")
	ErrNoKnownActions     = errors.New("character has no known actions")
	ErrNotHumanControlled = errors.New("participant is AI controlled")
	ErrNotAIControlled    = errors.New("participant is human controlled")
	ErrNoCurrentActor     = errors.New("battle has no current actor")
)

// finalizeBattle writes the post-battle summary record exactly once when a
// battle reaches a terminal status. Abandoned and errored battles get a
// record too so match history stays complete.
func finalizeBattle(repo BattleRepo, b *game.Battle) {
	if !b.Status.Terminal() || b.RecordWritten {
		return
	}
	b.ActionDeadline = time.Time{}
	rec := engine.BuildRecord(b)
	if err := repo.SaveCombatRecord(rec); err != nil {
		logging.Error("failed to save combat record", err, logging.Fields{constants.LogFieldBattleID: b.ID})
		return
	}
	b.RecordWritten = true
	logging.Info("combat record written", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldWinner:   b.Winner,
		constants.LogFieldReason:   b.Reason,
	})
}
