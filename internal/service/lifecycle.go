package service

import (
	"time"

	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/engine"
	"github.com/soltgard/battleforge/internal/game"
	"github.com/soltgard/battleforge/internal/logging"
)

// AbandonBattle forfeits an active or paused battle. The abandoned battle
// still gets a combat record so match history stays complete.
func AbandonBattle(repo BattleRepo, eng *engine.Engine, battleID uint) (*game.Battle, error) {
	unlock := lockBattle(battleID)
	defer unlock()

	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if err := eng.Abandon(b); err != nil {
		return nil, err
	}
	finalizeBattle(repo, b)
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	logging.Info("battle abandoned", logging.Fields{constants.LogFieldBattleID: b.ID})
	return b, nil
}

// PauseBattle suspends an active battle between turns. The action deadline
// is cleared so the timeout scanner leaves paused battles alone.
func PauseBattle(repo BattleRepo, battleID uint) (*game.Battle, error) {
	unlock := lockBattle(battleID)
	defer unlock()

	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusActive {
		return nil, ErrBattleNotActive
	}
	b.Status = game.StatusPaused
	b.ActionDeadline = time.Time{}
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ResumeBattle reactivates a paused battle and restarts the action clock.
func ResumeBattle(repo BattleRepo, battleID uint, actionTimeout time.Duration) (*game.Battle, error) {
	unlock := lockBattle(battleID)
	defer unlock()

	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusPaused {
		return nil, ErrBattleNotPaused
	}
	b.Status = game.StatusActive
	b.ActionDeadline = time.Now().Add(actionTimeout)
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}
