package service

import (
	"errors"
	"time"

	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/engine"
	"github.com/soltgard/battleforge/internal/game"
	"github.com/soltgard/battleforge/internal/logging"
)

// SubmitAction resolves one turn for a human-controlled participant. The
// call is serialized per battle; engine validation errors leave the battle
// untouched and are returned to the caller verbatim so the API layer can
// map them to precise responses.
func SubmitAction(repo BattleRepo, eng *engine.Engine, battleID uint, actorID, actionID string, targetIDs []string, actionTimeout time.Duration) (*game.Battle, []game.CombatLogEntry, error) {
	unlock := lockBattle(battleID)
	defer unlock()

	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, nil, ErrBattleNotFound
	}
	if b.Status != game.StatusActive {
		return nil, nil, ErrBattleNotActive
	}
	actor := b.ParticipantByID(actorID)
	if actor == nil {
		return nil, nil, engine.ErrActorUnknown
	}
	if actor.AIProfileID != "" {
		return nil, nil, ErrNotHumanControlled
	}

	entries, err := eng.ProcessTurn(b, actorID, actionID, targetIDs)
	if err != nil {
		if errors.Is(err, engine.ErrInvariant) {
			// The engine already moved the battle to the error status;
			// persist that so the corruption is visible, then bubble up.
			logging.Error("simulation invariant violated", err, logging.Fields{
				constants.LogFieldBattleID: b.ID,
				constants.LogFieldActorID:  actorID,
				constants.LogFieldTurn:     b.CurrentTurn,
			})
			finalizeBattle(repo, b)
			if uerr := repo.UpdateBattle(b); uerr != nil {
				logging.Error("failed to persist errored battle", uerr, logging.Fields{constants.LogFieldBattleID: b.ID})
			}
		}
		return nil, nil, err
	}

	logging.Debug("turn resolved", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldActorID:  actorID,
		constants.LogFieldActionID: actionID,
		constants.LogFieldTurn:     b.CurrentTurn,
		"log_entries":              len(entries),
	})

	if b.Status == game.StatusActive {
		b.ActionDeadline = time.Now().Add(actionTimeout)
	}
	finalizeBattle(repo, b)
	if err := repo.UpdateBattle(b); err != nil {
		return nil, nil, err
	}
	return b, entries, nil
}
