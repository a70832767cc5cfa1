package engine

import (
	"math/rand"

	"github.com/soltgard/battleforge/internal/game"
)

// Shared fixtures for the engine tests. All engines are seeded so every
// test run draws the same random sequence.

func testEngine(actions map[string]game.ActionDefinition, profiles map[string]game.AIProfile, seed int64) *Engine {
	return New(actions, profiles, rand.New(rand.NewSource(seed)))
}

func duelActions() map[string]game.ActionDefinition {
	return map[string]game.ActionDefinition{
		"basic_attack": {
			ID:        "basic_attack",
			Name:      "Basic Attack",
			Targeting: game.TargetingRule{Type: game.TargetSingle, Side: game.SideEnemies, MaxTargets: 1},
			Effects: []game.CombatEffect{{
				Type: game.EffectDamage,
				Calc: game.EffectCalculation{Base: 50, ScalingStat: game.StatAttack, ScalingPercent: 100},
			}},
		},
		"guard": {
			ID:        "guard",
			Name:      "Guard",
			Targeting: game.TargetingRule{Type: game.TargetSelf},
			Effects: []game.CombatEffect{{
				Type: game.EffectSpecial,
				Calc: game.EffectCalculation{Base: 5},
			}},
		},
	}
}

func newParticipant(id, name string, team game.Team, st game.Stats, actionIDs ...string) game.Participant {
	actions := make([]game.ActionInstance, 0, len(actionIDs))
	for _, aid := range actionIDs {
		actions = append(actions, game.ActionInstance{ActionID: aid})
	}
	return game.Participant{
		ParticipantID: id,
		Name:          name,
		Team:          team,
		Level:         1,
		Row:           2,
		CurrentStats:  st,
		MaxStats:      st,
		Actions:       actions,
	}
}

func eliminationConditions() []game.BattleCondition {
	return []game.BattleCondition{
		{Type: game.ConditionVictory, Kind: game.KindEliminateTeam, Team: game.TeamEnemy, Priority: 1, CheckTiming: game.CheckContinuous},
		{Type: game.ConditionDefeat, Kind: game.KindEliminateTeam, Team: game.TeamPlayer, Priority: 1, CheckTiming: game.CheckContinuous},
	}
}

// newDuel builds an active two-participant battle with turn order already
// rolled by the given engine.
func newDuel(e *Engine, a, b game.Participant, maxTurns int) *game.Battle {
	battle := &game.Battle{
		Type:         game.BattleTraining,
		Status:       game.StatusActive,
		Participants: []game.Participant{a, b},
		CurrentTurn:  1,
		MaxTurns:     maxTurns,
		Conditions:   eliminationConditions(),
		TieBreak:     game.TieBreakPlayerFirst,
	}
	battle.TurnOrder = e.BuildTurnOrder(battle)
	return battle
}
