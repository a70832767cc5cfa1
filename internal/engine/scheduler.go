package engine

import (
	"sort"

	"github.com/soltgard/battleforge/internal/game"
)

// Turn order scheduler: builds the initiative sequence and advances the
// cursor across rounds, skipping participants that cannot act.

// BuildTurnOrder computes the initiative ordering for all participants.
// Every participant draws one initiative value from the engine's random
// source; the sort is by effective speed descending, with the configured
// tie-break policy deciding between equal speeds. The default policy uses
// the precomputed initiative, which keeps ordering deterministic within a
// single computation but not across battles.
func (e *Engine) BuildTurnOrder(b *game.Battle) game.TurnOrder {
	entries := make([]game.TurnOrderEntry, 0, len(b.Participants))
	for i := range b.Participants {
		p := &b.Participants[i]
		speed := EffectiveStats(p).Speed
		entries = append(entries, game.TurnOrderEntry{
			ParticipantID: p.ParticipantID,
			Speed:         speed,
			Initiative:    InitiativeRoll(speed, e.rng),
			CanAct:        !p.Defeated(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Speed != entries[j].Speed {
			return entries[i].Speed > entries[j].Speed
		}
		return e.tieBreakLess(b, &entries[i], &entries[j])
	})

	order := game.TurnOrder{Entries: entries, CurrentIndex: 0, Round: 1}
	normalizeCursor(b, &order)
	return order
}

// tieBreakLess orders two equal-speed entries according to the battle's
// tie-break policy.
func (e *Engine) tieBreakLess(b *game.Battle, a, c *game.TurnOrderEntry) bool {
	switch b.TieBreak {
	case game.TieBreakPlayerFirst:
		pa, pc := b.ParticipantByID(a.ParticipantID), b.ParticipantByID(c.ParticipantID)
		if pa != nil && pc != nil && pa.Team != pc.Team {
			return pa.Team == game.TeamPlayer
		}
		return a.Initiative > c.Initiative
	case game.TieBreakHigherLevel:
		pa, pc := b.ParticipantByID(a.ParticipantID), b.ParticipantByID(c.ParticipantID)
		if pa != nil && pc != nil && pa.Level != pc.Level {
			return pa.Level > pc.Level
		}
		return a.Initiative > c.Initiative
	default: // TieBreakRandom
		return a.Initiative > c.Initiative
	}
}

// syncCanAct refreshes each entry's CanAct flag from participant state.
func syncCanAct(b *game.Battle, order *game.TurnOrder) {
	for i := range order.Entries {
		p := b.ParticipantByID(order.Entries[i].ParticipantID)
		order.Entries[i].CanAct = p != nil && !p.Defeated()
	}
}

// normalizeCursor moves the cursor forward, without consuming a step, until
// it points at an entry that can act. Returns false when nobody can act.
func normalizeCursor(b *game.Battle, order *game.TurnOrder) bool {
	syncCanAct(b, order)
	n := len(order.Entries)
	for i := 0; i < n; i++ {
		idx := (order.CurrentIndex + i) % n
		if order.Entries[idx].CanAct {
			order.CurrentIndex = idx
			return true
		}
	}
	return false
}

// AdvanceTurnOrder moves the cursor to the next entry able to act, skipping
// defeated participants. Entries with DelayedTurns pending are skipped once
// per pending delay, decrementing it each time. Returns wrapped=true when
// the cursor passed index 0 (a full round elapsed) and stalled=true when no
// entry at all can act, which the state machine treats as a draw.
func AdvanceTurnOrder(b *game.Battle, order *game.TurnOrder) (wrapped, stalled bool) {
	syncCanAct(b, order)
	n := len(order.Entries)
	if n == 0 {
		return false, true
	}

	// A delayed entry consumes one skip per pass, so enough full loops to
	// drain every pending delay always terminates.
	totalDelays := 0
	for i := range order.Entries {
		totalDelays += order.Entries[i].DelayedTurns
	}
	maxSteps := n * (totalDelays + 2)

	idx := order.CurrentIndex
	for step := 0; step < maxSteps; step++ {
		idx = (idx + 1) % n
		if idx == 0 {
			wrapped = true
		}
		entry := &order.Entries[idx]
		if !entry.CanAct {
			continue
		}
		if entry.DelayedTurns > 0 {
			entry.DelayedTurns--
			continue
		}
		order.CurrentIndex = idx
		return wrapped, false
	}
	return wrapped, true
}

// DelayParticipant adds pending delayed turns to a participant's entry.
func DelayParticipant(order *game.TurnOrder, participantID string, turns int) {
	for i := range order.Entries {
		if order.Entries[i].ParticipantID == participantID {
			order.Entries[i].DelayedTurns += turns
			return
		}
	}
}
