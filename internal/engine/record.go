package engine

import (
	"github.com/soltgard/battleforge/internal/game"
)

// BuildRecord derives the post-battle analytic summary from a finished
// battle and its combat log. Called exactly once per battle by the service
// layer; the record is immutable afterward.
func BuildRecord(b *game.Battle) *game.CombatRecord {
	rec := &game.CombatRecord{
		BattleID:   b.ID,
		BattleType: b.Type,
		Winner:     b.Winner,
		Reason:     b.Reason,
		Turns:      b.CurrentTurn,
	}

	switch {
	case b.Status == game.StatusAbandoned:
		rec.Result = "abandoned"
	case b.Status == game.StatusError:
		rec.Result = "error"
	case b.Winner == string(game.TeamPlayer):
		rec.Result = "victory"
	case b.Winner == string(game.TeamEnemy):
		rec.Result = "defeat"
	default:
		rec.Result = "draw"
	}

	damageBy := make(map[string]int)
	for i := range b.CombatLog {
		entry := &b.CombatLog[i]
		switch entry.Type {
		case game.LogDamage:
			rec.TotalDamage += entry.Value
			damageBy[entry.ActorID] += entry.Value
		case game.LogHealing:
			rec.TotalHealing += entry.Value
		}
	}

	for id, dmg := range damageBy {
		if dmg > damageBy[rec.MVPID] || rec.MVPID == "" {
			rec.MVPID = id
		}
	}
	if p := b.ParticipantByID(rec.MVPID); p != nil {
		rec.MVPName = p.Name
	}

	if rec.Result == "victory" {
		diff := averageLevel(b, game.TeamEnemy) - averageLevel(b, game.TeamPlayer)
		rec.Experience = ExperienceGain(b.Rewards.Experience, diff)
		rec.Gold = b.Rewards.Gold
	}

	if b.EndedAt != nil {
		rec.DurationSecs = int(b.EndedAt.Sub(b.StartedAt).Seconds())
	}
	return rec
}

func averageLevel(b *game.Battle, t game.Team) int {
	members := b.TeamMembers(t)
	if len(members) == 0 {
		return 0
	}
	total := 0
	for _, p := range members {
		total += p.Level
	}
	return total / len(members)
}
