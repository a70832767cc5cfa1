package engine

import "github.com/soltgard/battleforge/internal/game"

// turnContext accumulates the log entries produced while one turn resolves.
// Entries are flushed onto the battle's append-only combat log at the end
// of the cycle; nothing here mutates entries after creation.
type turnContext struct {
	b       *game.Battle
	phase   game.TurnPhase
	entries []game.CombatLogEntry
}

func newTurnContext(b *game.Battle) *turnContext {
	return &turnContext{b: b, phase: game.PhaseStart, entries: make([]game.CombatLogEntry, 0, 16)}
}

func (tc *turnContext) setPhase(p game.TurnPhase) { tc.phase = p }

func (tc *turnContext) log(t game.LogType, actorID string, targetIDs []string, value int, critical bool, desc string) {
	tc.entries = append(tc.entries, game.CombatLogEntry{
		BattleID:    tc.b.ID,
		Turn:        tc.b.CurrentTurn,
		Phase:       tc.phase,
		Type:        t,
		ActorID:     actorID,
		TargetIDs:   targetIDs,
		Value:       value,
		Critical:    critical,
		Description: desc,
	})
}

func (tc *turnContext) note(desc string) {
	tc.log(game.LogInfo, "", nil, 0, false, desc)
}

// flush appends the accumulated entries to the battle log and returns them.
func (tc *turnContext) flush() []game.CombatLogEntry {
	tc.b.CombatLog = append(tc.b.CombatLog, tc.entries...)
	return tc.entries
}
