package engine

import (
	"fmt"
	"math"

	"github.com/soltgard/battleforge/internal/game"
)

// Status effect ledger: applies, ticks and expires the timed modifiers on a
// participant and folds them into effective stats.

// ApplyStatusEffect attaches eff to p. Reapplying an effect that is already
// present increments its stacks (up to MaxStacks) and refreshes its
// duration; at max stacks only the duration refreshes. New effects are
// rejected once the participant carries the maximum number of effects.
// The second return value reports whether the application stacked onto an
// existing effect.
func (e *Engine) ApplyStatusEffect(p *game.Participant, eff game.StatusEffect) (applied, stacked bool) {
	for i := range p.StatusEffects {
		cur := &p.StatusEffects[i]
		if cur.ID != eff.ID {
			continue
		}
		if cur.Stacks < cur.MaxStacks {
			cur.Stacks++
		}
		cur.Duration = cur.MaxDuration
		return true, true
	}
	if len(p.StatusEffects) >= e.maxEffects {
		return false, false
	}
	if eff.Stacks <= 0 {
		eff.Stacks = 1
	}
	if eff.MaxStacks <= 0 {
		eff.MaxStacks = 1
	}
	if eff.MaxDuration == 0 {
		eff.MaxDuration = eff.Duration
	}
	p.StatusEffects = append(p.StatusEffects, eff)
	return true, false
}

// DispelStatusEffect removes the first dispellable effect with the given id.
func (e *Engine) DispelStatusEffect(p *game.Participant, id string) bool {
	for i := range p.StatusEffects {
		if p.StatusEffects[i].ID == id && p.StatusEffects[i].Dispellable {
			p.StatusEffects = append(p.StatusEffects[:i], p.StatusEffects[i+1:]...)
			return true
		}
	}
	return false
}

// EffectiveStats folds every active effect's modifiers onto the current
// stats in a fixed order: flat add/subtract first, then percentage, then
// multiply/divide, then set last. The order makes stacking deterministic
// regardless of when effects were applied. Pure read; calling it twice
// without an intervening apply or tick returns identical results.
func EffectiveStats(p *game.Participant) game.Stats {
	out := p.CurrentStats

	forEachData := func(fn func(d game.StatusEffectData, stacks int)) {
		for i := range p.StatusEffects {
			eff := &p.StatusEffects[i]
			for _, d := range eff.Data {
				fn(d, eff.Stacks)
			}
		}
	}

	// Pass 1: flat add/subtract, scaled by stack count.
	forEachData(func(d game.StatusEffectData, stacks int) {
		if d.Kind != game.ValueFlat {
			return
		}
		v := statValue(&out, d.Stat)
		switch d.Op {
		case game.OpAdd:
			v += int(d.Value) * stacks
		case game.OpSubtract:
			v -= int(d.Value) * stacks
		default:
			return
		}
		setStatValue(&out, d.Stat, v)
	})

	// Pass 2: percentage adjustments, scaled by stack count.
	forEachData(func(d game.StatusEffectData, stacks int) {
		if d.Kind != game.ValuePercentage {
			return
		}
		v := float64(statValue(&out, d.Stat))
		pct := d.Value * float64(stacks) / 100.0
		switch d.Op {
		case game.OpAdd:
			v *= 1 + pct
		case game.OpSubtract:
			v *= 1 - pct
		default:
			return
		}
		setStatValue(&out, d.Stat, int(math.Floor(v)))
	})

	// Pass 3: multipliers apply once per effect, not per stack.
	forEachData(func(d game.StatusEffectData, stacks int) {
		if d.Kind != game.ValueMultiplier {
			return
		}
		v := float64(statValue(&out, d.Stat))
		switch d.Op {
		case game.OpMultiply:
			v *= d.Value
		case game.OpDivide:
			if d.Value != 0 {
				v /= d.Value
			}
		default:
			return
		}
		setStatValue(&out, d.Stat, int(math.Floor(v)))
	})

	// Pass 4: an explicit set always wins.
	forEachData(func(d game.StatusEffectData, stacks int) {
		if d.Op == game.OpSet {
			setStatValue(&out, d.Stat, int(d.Value))
		}
	})

	clampNonNegative(&out)
	return out
}

// tickStatusEffects advances every effect on p by one tick: periodic
// damage/healing fires on its interval, durations count down, and effects
// reaching zero are removed with one log entry each. Permanent effects
// (duration -1) tick but never expire.
func (e *Engine) tickStatusEffects(tc *turnContext, p *game.Participant) {
	kept := p.StatusEffects[:0]
	for i := range p.StatusEffects {
		eff := p.StatusEffects[i]
		eff.Ticks++

		if eff.TickInterval > 0 && eff.Ticks%eff.TickInterval == 0 {
			if eff.TickDamage > 0 {
				dmg := eff.TickDamage * eff.Stacks
				applyRawDamage(p, dmg)
				tc.log(game.LogStatusTick, p.ParticipantID, []string{p.ParticipantID}, dmg, false,
					fmt.Sprintf("%s suffers %d damage from %s", p.Name, dmg, eff.Name))
			}
			if eff.TickHealing > 0 {
				heal := eff.TickHealing * eff.Stacks
				healed := applyRawHealing(p, heal)
				tc.log(game.LogStatusTick, p.ParticipantID, []string{p.ParticipantID}, healed, false,
					fmt.Sprintf("%s recovers %d health from %s", p.Name, healed, eff.Name))
			}
		}

		if !eff.Permanent() {
			eff.Duration--
			if eff.Duration <= 0 {
				tc.log(game.LogStatusExpired, p.ParticipantID, []string{p.ParticipantID}, 0, false,
					fmt.Sprintf("%s wears off from %s", eff.Name, p.Name))
				continue
			}
		}
		kept = append(kept, eff)
	}
	p.StatusEffects = kept
}

// applyRawDamage reduces health directly, shield first, clamped at zero.
func applyRawDamage(p *game.Participant, dmg int) {
	if p.Shield > 0 {
		if p.Shield >= dmg {
			p.Shield -= dmg
			return
		}
		dmg -= p.Shield
		p.Shield = 0
	}
	p.CurrentStats.Health -= dmg
	if p.CurrentStats.Health < 0 {
		p.CurrentStats.Health = 0
	}
}

// applyRawHealing restores health clamped to the maximum, returning the
// amount actually restored.
func applyRawHealing(p *game.Participant, heal int) int {
	before := p.CurrentStats.Health
	p.CurrentStats.Health += heal
	if p.CurrentStats.Health > p.MaxStats.Health {
		p.CurrentStats.Health = p.MaxStats.Health
	}
	return p.CurrentStats.Health - before
}

func statValue(s *game.Stats, name game.StatName) int {
	switch name {
	case game.StatHealth:
		return s.Health
	case game.StatMana:
		return s.Mana
	case game.StatEnergy:
		return s.Energy
	case game.StatAttack:
		return s.Attack
	case game.StatDefense:
		return s.Defense
	case game.StatSpeed:
		return s.Speed
	case game.StatAccuracy:
		return s.Accuracy
	case game.StatEvasion:
		return s.Evasion
	case game.StatCritRate:
		return s.CritRate
	case game.StatCritDamage:
		return s.CritDamage
	case game.StatLuck:
		return s.Luck
	case game.StatElementalPower:
		return s.ElementalPower
	}
	return 0
}

func setStatValue(s *game.Stats, name game.StatName, v int) {
	switch name {
	case game.StatHealth:
		s.Health = v
	case game.StatMana:
		s.Mana = v
	case game.StatEnergy:
		s.Energy = v
	case game.StatAttack:
		s.Attack = v
	case game.StatDefense:
		s.Defense = v
	case game.StatSpeed:
		s.Speed = v
	case game.StatAccuracy:
		s.Accuracy = v
	case game.StatEvasion:
		s.Evasion = v
	case game.StatCritRate:
		s.CritRate = v
	case game.StatCritDamage:
		s.CritDamage = v
	case game.StatLuck:
		s.Luck = v
	case game.StatElementalPower:
		s.ElementalPower = v
	}
}

func clampNonNegative(s *game.Stats) {
	ints := []*int{
		&s.Health, &s.Mana, &s.Energy, &s.Attack, &s.Defense, &s.Speed,
		&s.Accuracy, &s.Evasion, &s.CritRate, &s.CritDamage, &s.Luck, &s.ElementalPower,
	}
	for _, v := range ints {
		if *v < 0 {
			*v = 0
		}
	}
}
