package engine

import (
	"fmt"

	"github.com/soltgard/battleforge/internal/game"
)

// Action resolver: validates an action, deducts its costs, resolves its
// targets and applies each effect, emitting one log entry per discrete
// event. Side effects are exactly: target stat mutation, ledger mutation,
// log append and the action's cooldown/use update.

// resolveAction executes one action for the given actor. Validation happens
// before any state mutation; a returned error means the battle is unchanged.
func (e *Engine) resolveAction(tc *turnContext, b *game.Battle, actor *game.Participant, actionID string, targetIDs []string) error {
	inst := actor.ActionState(actionID)
	if inst == nil {
		return ErrUnknownAction
	}
	def, ok := e.actions[actionID]
	if !ok {
		return ErrUnknownAction
	}
	if inst.Cooldown > 0 {
		return ErrActionOnCooldown
	}
	if def.MaxUses > 0 && inst.Uses >= def.MaxUses {
		return ErrActionExhausted
	}

	costs := def.Costs
	st := &actor.CurrentStats
	// Health costs may never reduce the actor below 1 health.
	if st.Mana < costs.Mana || st.Energy < costs.Energy || st.Health <= costs.Health {
		return ErrInsufficientResources
	}

	// Targets resolve before costs are paid: an action with nobody to hit
	// is a rejection, not a wasted turn.
	targets := e.resolveTargets(tc, b, actor, &def, targetIDs)
	if len(targets) == 0 {
		return ErrNoValidTargets
	}
	st.Mana -= costs.Mana
	st.Energy -= costs.Energy
	st.Health -= costs.Health

	tc.log(game.LogAction, actor.ParticipantID, participantIDs(targets), 0, false,
		fmt.Sprintf("%s uses %s", actor.Name, def.Name))

	actorEff := EffectiveStats(actor)
	for _, effect := range def.Effects {
		for _, target := range targets {
			e.applyEffect(tc, b, actor, &actorEff, target, effect)
		}
	}

	inst.Cooldown = def.Cooldown
	inst.Uses++
	return nil
}

// applyEffect applies a single combat effect to a single target, rolling
// hit and crit through the math library where the effect asks for them.
func (e *Engine) applyEffect(tc *turnContext, b *game.Battle, actor *game.Participant, actorEff *game.Stats, target *game.Participant, eff game.CombatEffect) {
	targetEff := EffectiveStats(target)

	switch eff.Type {
	case game.EffectDamage:
		if eff.CanMiss {
			chance := HitChance(actorEff.Accuracy, targetEff.Evasion)
			if e.rng.Float64()*100 >= float64(chance) {
				tc.log(game.LogInfo, actor.ParticipantID, []string{target.ParticipantID}, 0, false,
					fmt.Sprintf("%s misses %s", actor.Name, target.Name))
				return
			}
		}

		scaling := statValue(actorEff, eff.Calc.ScalingStat) * eff.Calc.ScalingPercent / 100
		dmg := Damage(eff.Calc.Base, scaling, targetEff.Defense, 1)

		element := eff.Element
		if element == game.ElementNone {
			element = actor.Element
		}
		dmg = ElementalDamage(element, target.Element, dmg)
		if res := targetEff.Resistances[element]; res != 0 {
			dmg -= dmg * res / 100
		}

		critical := false
		if eff.CanCrit {
			chance := CritChance(actorEff.CritRate, actorEff.Luck)
			if e.rng.Float64()*100 < float64(chance) {
				critical = true
				critDmg := actorEff.CritDamage
				if critDmg <= 0 {
					critDmg = 150
				}
				dmg = dmg * critDmg / 100
			}
		}

		dmg = applyVariance(dmg, eff.Calc.Variance, e.rng)
		if dmg < 1 {
			dmg = 1
		}
		if target.Barrier > 0 {
			dmg -= dmg * target.Barrier / 100
		}

		applyRawDamage(target, dmg)
		actor.TransformCharge++
		tc.log(game.LogDamage, actor.ParticipantID, []string{target.ParticipantID}, dmg, critical,
			fmt.Sprintf("%s takes %d damage", target.Name, dmg))
		if target.Defeated() {
			tc.note(fmt.Sprintf("%s is defeated!", target.Name))
		}

	case game.EffectHealing:
		scaling := statValue(actorEff, eff.Calc.ScalingStat) * eff.Calc.ScalingPercent / 100
		heal := eff.Calc.Base + scaling
		critical := false
		if eff.CanCrit {
			chance := CritChance(actorEff.CritRate, actorEff.Luck)
			if e.rng.Float64()*100 < float64(chance) {
				critical = true
				heal = heal * 3 / 2
			}
		}
		heal = applyVariance(heal, eff.Calc.Variance, e.rng)
		healed := applyRawHealing(target, heal)
		tc.log(game.LogHealing, actor.ParticipantID, []string{target.ParticipantID}, healed, critical,
			fmt.Sprintf("%s recovers %d health", target.Name, healed))

	case game.EffectStatus:
		if eff.Status == nil {
			return
		}
		applied, stacked := e.ApplyStatusEffect(target, *eff.Status)
		switch {
		case !applied:
			tc.note(fmt.Sprintf("%s resists %s (too many effects)", target.Name, eff.Status.Name))
		case stacked:
			tc.log(game.LogStatusApplied, actor.ParticipantID, []string{target.ParticipantID}, 0, false,
				fmt.Sprintf("%s on %s intensifies", eff.Status.Name, target.Name))
		default:
			tc.log(game.LogStatusApplied, actor.ParticipantID, []string{target.ParticipantID}, 0, false,
				fmt.Sprintf("%s is afflicted by %s", target.Name, eff.Status.Name))
		}

	case game.EffectMovement:
		row := target.Row + eff.Calc.Base
		if row < 1 {
			row = 1
		}
		if row > 3 {
			row = 3
		}
		target.Row = row
		tc.log(game.LogInfo, actor.ParticipantID, []string{target.ParticipantID}, eff.Calc.Base, false,
			fmt.Sprintf("%s is moved to row %d", target.Name, row))

	case game.EffectManipulation:
		turns := eff.Calc.Base
		if turns < 1 {
			turns = 1
		}
		DelayParticipant(&b.TurnOrder, target.ParticipantID, turns)
		tc.log(game.LogInfo, actor.ParticipantID, []string{target.ParticipantID}, turns, false,
			fmt.Sprintf("%s's next turn is delayed", target.Name))

	case game.EffectSpecial:
		scaling := statValue(actorEff, eff.Calc.ScalingStat) * eff.Calc.ScalingPercent / 100
		shield := eff.Calc.Base + scaling
		target.Shield += shield
		tc.log(game.LogInfo, actor.ParticipantID, []string{target.ParticipantID}, shield, false,
			fmt.Sprintf("%s gains a %d point shield", target.Name, shield))
	}
}

func participantIDs(list []*game.Participant) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ParticipantID)
	}
	return out
}
