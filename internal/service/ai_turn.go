package service

import (
	"errors"
	"time"

	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/engine"
	"github.com/soltgard/battleforge/internal/game"
	"github.com/soltgard/battleforge/internal/logging"
)

// AdvanceAITurn plays the current AI-controlled participant's turn. Clients
// poll for this after every human action, so concurrent requests for the
// same battle are deduplicated: only one executes, the rest share its
// result.
func AdvanceAITurn(repo BattleRepo, eng *engine.Engine, battleID uint, actionTimeout time.Duration) (*game.Battle, []game.CombatLogEntry, error) {
	type aiResult struct {
		b       *game.Battle
		entries []game.CombatLogEntry
	}
	v, err, _ := aiTurnGroup.Do(battleKey(battleID), func() (interface{}, error) {
		b, entries, err := advanceAITurn(repo, eng, battleID, actionTimeout)
		if err != nil {
			return nil, err
		}
		return aiResult{b: b, entries: entries}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	res := v.(aiResult)
	return res.b, res.entries, nil
}

func advanceAITurn(repo BattleRepo, eng *engine.Engine, battleID uint, actionTimeout time.Duration) (*game.Battle, []game.CombatLogEntry, error) {
	unlock := lockBattle(battleID)
	defer unlock()

	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, nil, ErrBattleNotFound
	}
	if b.Status != game.StatusActive {
		return nil, nil, ErrBattleNotActive
	}
	cur := b.TurnOrder.Current()
	if cur == nil {
		return nil, nil, ErrNoCurrentActor
	}
	actor := b.ParticipantByID(cur.ParticipantID)
	if actor == nil {
		return nil, nil, engine.ErrActorUnknown
	}
	if actor.AIProfileID == "" {
		return nil, nil, ErrNotAIControlled
	}

	entries, err := playTurn(eng, b, actor)
	if err != nil {
		if errors.Is(err, engine.ErrInvariant) {
			finalizeBattle(repo, b)
			if uerr := repo.UpdateBattle(b); uerr != nil {
				logging.Error("failed to persist errored battle", uerr, logging.Fields{constants.LogFieldBattleID: b.ID})
			}
		}
		return nil, nil, err
	}

	if b.Status == game.StatusActive {
		b.ActionDeadline = time.Now().Add(actionTimeout)
	}
	finalizeBattle(repo, b)
	if err := repo.UpdateBattle(b); err != nil {
		return nil, nil, err
	}
	return b, entries, nil
}

// playTurn asks the decision engine for a move and executes it, passing
// when the actor has nothing usable.
func playTurn(eng *engine.Engine, b *game.Battle, actor *game.Participant) ([]game.CombatLogEntry, error) {
	decision := eng.ChooseAction(b, actor)
	if decision.Pass {
		logging.Info("participant passes turn", logging.Fields{
			constants.LogFieldBattleID: b.ID,
			constants.LogFieldActorID:  actor.ParticipantID,
			constants.LogFieldReason:   decision.Reason,
		})
		return eng.PassTurn(b, actor.ParticipantID)
	}
	return eng.ProcessTurn(b, actor.ParticipantID, decision.ActionID, decision.TargetIDs)
}
