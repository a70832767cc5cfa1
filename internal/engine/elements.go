package engine

import (
	"math"

	"github.com/soltgard/battleforge/internal/game"
)

// elementAdvantage is the fixed directed advantage graph over the twelve
// elements. The relation is not symmetric: an element may beat another
// without the reverse holding, and many pairs have no relation at all
// (neutral both ways). Do not reorder or extend without versioning saved
// battles; damage numbers depend on this table exactly.
var elementAdvantage = map[game.Element][]game.Element{
	game.ElementFire:    {game.ElementIce, game.ElementNature},
	game.ElementWater:   {game.ElementSteel, game.ElementEarth},
	game.ElementEarth:   {game.ElementThunder, game.ElementPoison},
	game.ElementWind:    {game.ElementNature, game.ElementArcane},
	game.ElementIce:     {game.ElementWind, game.ElementWater},
	game.ElementNature:  {game.ElementWater, game.ElementEarth},
	game.ElementThunder: {game.ElementWater, game.ElementWind},
	game.ElementPoison:  {game.ElementNature, game.ElementLight},
	game.ElementLight:   {game.ElementShadow, game.ElementPoison},
	game.ElementShadow:  {game.ElementLight, game.ElementArcane},
	game.ElementArcane:  {game.ElementSteel, game.ElementIce},
	game.ElementSteel:   {game.ElementIce, game.ElementFire},
}

// hasAdvantage reports whether attacker is listed as advantaged over target.
func hasAdvantage(attacker, target game.Element) bool {
	for _, e := range elementAdvantage[attacker] {
		if e == target {
			return true
		}
	}
	return false
}

// ElementalDamage applies the elemental advantage multiplier to base. The
// attacker's advantage is checked first; only when it does not hold is the
// target's counter-advantage applied. Unrelated pairs are neutral.
func ElementalDamage(attacker, target game.Element, base int) int {
	if hasAdvantage(attacker, target) {
		return int(math.Floor(float64(base) * 1.5))
	}
	if hasAdvantage(target, attacker) {
		return int(math.Floor(float64(base) * 0.75))
	}
	return base
}
