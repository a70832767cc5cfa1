package engine

import (
	"math"
	"math/rand"
)

// Pure combat formulas. All functions here are stateless; the only random
// input is the *rand.Rand passed explicitly so battles can be replayed.

// Damage computes raw damage. Defense counts at half weight and the result
// is never below 1 regardless of how high defense is.
func Damage(base, attack, defense int, modifier float64) int {
	d := int(math.Floor((float64(base) + float64(attack) - float64(defense)/2.0) * modifier))
	if d < 1 {
		return 1
	}
	return d
}

// CritChance returns the critical hit chance percentage, capped at 95.
func CritChance(baseCrit, luck int) int {
	c := baseCrit + luck/10
	if c > 95 {
		return 95
	}
	return c
}

// HitChance returns the hit chance percentage, clamped to [5, 95] so no
// attack is ever a guaranteed hit or a guaranteed miss.
func HitChance(accuracy, evasion int) int {
	c := accuracy - evasion
	if c < 5 {
		return 5
	}
	if c > 95 {
		return 95
	}
	return c
}

// InitiativeRoll produces the initiative score stored on a turn order entry
// at construction time. Ordering is by speed first, so the roll only decides
// between equal speeds.
func InitiativeRoll(speed int, rng *rand.Rand) float64 {
	return float64(speed) + rng.Float64()*20
}

// ExperienceGain scales a base experience reward by the level difference
// between the defeated side and the victor. The multiplier never drops
// below 0.1 so even trivial fights award something.
func ExperienceGain(base, levelDiff int) int {
	m := 1 + float64(levelDiff)*0.1
	if m < 0.1 {
		m = 0.1
	}
	return int(math.Floor(float64(base) * m))
}

// applyVariance multiplies v by a uniform factor in [1-pct/100, 1+pct/100].
func applyVariance(v, pct int, rng *rand.Rand) int {
	if pct <= 0 {
		return v
	}
	f := 1 + (rng.Float64()*2-1)*float64(pct)/100.0
	out := int(math.Floor(float64(v) * f))
	if out < 0 {
		return 0
	}
	return out
}
