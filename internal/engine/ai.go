package engine

import (
	"sort"

	"github.com/soltgard/battleforge/internal/game"
)

// AI decision engine. The default policy is deliberately simple: weighted
// priority rules pick an allowed action set, the concrete action is a
// uniform choice among the usable matches, and targets are uniform among
// the opposing team's living members.

// AIDecision is the outcome of one action selection. Pass is true when the
// participant has no usable action and must auto-pass its turn.
type AIDecision struct {
	ActionID  string
	TargetIDs []string
	Pass      bool
	Reason    string
}

// defaultProfile is used when a participant references an unknown profile.
var defaultProfile = game.AIProfile{
	ID:              "default",
	Name:            "Default",
	HealthThreshold: 30,
	Priorities: []game.AIPriority{
		{Condition: "default", Weight: 0},
	},
}

// ChooseAction selects an action and target set for an AI-controlled
// participant. It always returns a usable action with a non-empty target
// list when one exists, or an explicit pass otherwise.
func (e *Engine) ChooseAction(b *game.Battle, actor *game.Participant) AIDecision {
	profile, ok := e.profiles[actor.AIProfileID]
	if !ok {
		profile = defaultProfile
	}
	threshold := profile.HealthThreshold
	if threshold <= 0 {
		threshold = 30
	}

	usable := e.usableActions(actor)
	if len(usable) == 0 {
		return AIDecision{Pass: true, Reason: "no usable action"}
	}

	priorities := make([]game.AIPriority, len(profile.Priorities))
	copy(priorities, profile.Priorities)
	sort.SliceStable(priorities, func(i, j int) bool { return priorities[i].Weight > priorities[j].Weight })

	for _, rule := range priorities {
		if !e.conditionHolds(b, actor, rule.Condition, threshold) {
			continue
		}
		matches := filterByNames(usable, rule.Actions)
		if len(matches) == 0 {
			continue
		}
		actionID := matches[e.rng.Intn(len(matches))]
		return AIDecision{ActionID: actionID, TargetIDs: e.pickTargets(b, actor, actionID)}
	}

	// No rule matched; fall back to any usable action.
	actionID := usable[e.rng.Intn(len(usable))]
	return AIDecision{ActionID: actionID, TargetIDs: e.pickTargets(b, actor, actionID)}
}

// usableActions lists the actor's actions that are off cooldown, under the
// use limit and affordable right now.
func (e *Engine) usableActions(actor *game.Participant) []string {
	out := make([]string, 0, len(actor.Actions))
	for i := range actor.Actions {
		inst := &actor.Actions[i]
		def, ok := e.actions[inst.ActionID]
		if !ok || !def.Usable(inst) {
			continue
		}
		st := actor.CurrentStats
		if st.Mana < def.Costs.Mana || st.Energy < def.Costs.Energy || st.Health <= def.Costs.Health {
			continue
		}
		out = append(out, inst.ActionID)
	}
	return out
}

func (e *Engine) conditionHolds(b *game.Battle, actor *game.Participant, condition string, threshold int) bool {
	switch condition {
	case "self_health_low":
		return healthPercent(actor) < threshold
	case "enemy_health_low":
		for _, enemy := range b.LivingMembers(actor.Team.Opponent()) {
			if healthPercent(enemy) < threshold {
				return true
			}
		}
		return false
	case "ally_health_low":
		for _, ally := range b.LivingMembers(actor.Team) {
			if healthPercent(ally) < threshold {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// pickTargets selects targets for the chosen action: uniform among living
// enemies for offensive actions, the most wounded ally for support ones.
func (e *Engine) pickTargets(b *game.Battle, actor *game.Participant, actionID string) []string {
	def, ok := e.actions[actionID]
	if !ok {
		return nil
	}
	switch def.Targeting.Side {
	case game.SideAllies:
		allies := b.LivingMembers(actor.Team)
		if len(allies) == 0 {
			return []string{actor.ParticipantID}
		}
		worst := allies[0]
		for _, a := range allies[1:] {
			if healthPercent(a) < healthPercent(worst) {
				worst = a
			}
		}
		return []string{worst.ParticipantID}
	default:
		enemies := b.LivingMembers(actor.Team.Opponent())
		if len(enemies) == 0 {
			return nil
		}
		return []string{enemies[e.rng.Intn(len(enemies))].ParticipantID}
	}
}

func healthPercent(p *game.Participant) int {
	if p.MaxStats.Health <= 0 {
		return 0
	}
	return p.CurrentStats.Health * 100 / p.MaxStats.Health
}

func filterByNames(usable []string, allowed []string) []string {
	if len(allowed) == 0 {
		return usable
	}
	out := make([]string, 0, len(usable))
	for _, id := range usable {
		for _, a := range allowed {
			if id == a {
				out = append(out, id)
				break
			}
		}
	}
	return out
}
