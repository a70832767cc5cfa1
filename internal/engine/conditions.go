package engine

import (
	"fmt"

	"github.com/soltgard/battleforge/internal/game"
)

// Victory and defeat condition evaluation. Conditions fire at their
// configured timing; continuous conditions are checked at every timing.
// When several fire in the same evaluation the lowest numeric priority
// wins.

func (e *Engine) evaluateConditions(tc *turnContext, b *game.Battle, timing game.CheckTiming) bool {
	var winner *game.BattleCondition
	for i := range b.Conditions {
		c := &b.Conditions[i]
		if c.CheckTiming != timing && c.CheckTiming != game.CheckContinuous {
			continue
		}
		if !e.conditionSatisfied(b, c) {
			continue
		}
		if winner == nil || c.Priority < winner.Priority {
			winner = c
		}
	}
	if winner == nil {
		return false
	}

	w := winner.Winner
	if w == "" {
		w = string(winner.Team.Opponent())
	}
	reason := winner.Reason
	if reason == "" {
		reason = game.ReasonEliminated
	}
	e.endBattle(b, w, reason, fmt.Sprintf("Battle over: %s (%s)", w, reason))
	tc.note(b.Message)
	return true
}

func (e *Engine) conditionSatisfied(b *game.Battle, c *game.BattleCondition) bool {
	switch c.Kind {
	case game.KindEliminateTeam:
		return len(b.LivingMembers(c.Team)) == 0
	case game.KindTurnLimit:
		return b.CurrentTurn > c.Turns
	case game.KindSurviveTurns:
		return b.CurrentTurn > c.Turns && len(b.LivingMembers(c.Team)) > 0
	}
	return false
}
