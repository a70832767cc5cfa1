package engine

import (
	"fmt"
	"time"

	"github.com/soltgard/battleforge/internal/game"
)

// Battle state machine. One call to ProcessTurn drives a full turn cycle
// for the current actor: Start -> Action -> Resolution -> End -> Cleanup.
// The caller (service layer) guarantees at most one in-flight ProcessTurn
// per battle; the engine itself holds no locks.

// ProcessTurn executes one turn for actorID using the given action and
// targets. Validation failures return an error with the battle unchanged.
// On success the produced log entries are appended to the battle log and
// returned for the host to surface.
func (e *Engine) ProcessTurn(b *game.Battle, actorID, actionID string, targetIDs []string) ([]game.CombatLogEntry, error) {
	if b.Status != game.StatusActive {
		return nil, ErrBattleNotActive
	}
	actor := b.ParticipantByID(actorID)
	if actor == nil {
		return nil, ErrActorUnknown
	}
	cur := b.TurnOrder.Current()
	if cur == nil {
		return nil, e.failInvariant(b, "turn cursor out of range")
	}
	if cur.ParticipantID != actorID {
		return nil, ErrNotYourTurn
	}
	if actor.Defeated() {
		return nil, ErrActorDefeated
	}

	// Pre-flight validation so a rejected action leaves zero mutations.
	if err := e.validateAction(actor, actionID); err != nil {
		return nil, err
	}

	tc := newTurnContext(b)

	tc.setPhase(game.PhaseStart)
	if e.evaluateConditions(tc, b, game.CheckStartTurn) {
		return e.finishTurn(tc, b), nil
	}

	tc.setPhase(game.PhaseAction)
	if err := e.resolveAction(tc, b, actor, actionID, targetIDs); err != nil {
		return nil, err
	}

	tc.setPhase(game.PhaseResolution)
	syncCanAct(b, &b.TurnOrder)
	if err := e.checkInvariants(b); err != nil {
		tc.log(game.LogError, actorID, nil, 0, false, err.Error())
		tc.flush()
		return nil, err
	}
	if e.evaluateConditions(tc, b, game.CheckOnAction) {
		return e.finishTurn(tc, b), nil
	}

	tc.setPhase(game.PhaseEnd)
	e.tickStatusEffects(tc, actor)

	tc.setPhase(game.PhaseCleanup)
	// Cooldowns tick down once per owner's turn, at the end of it. The
	// action just resolved is excluded: its cooldown starts counting on the
	// owner's next turn, so cooldown N blocks exactly N turns.
	for i := range actor.Actions {
		if actor.Actions[i].ActionID == actionID {
			continue
		}
		if actor.Actions[i].Cooldown > 0 {
			actor.Actions[i].Cooldown--
		}
	}
	cur.HasActed = true

	wrapped, stalled := AdvanceTurnOrder(b, &b.TurnOrder)
	if stalled {
		e.endBattle(b, game.WinnerDraw, game.ReasonNoActors, "No participant can act; the battle ends in a draw.")
		tc.note(b.Message)
		return e.finishTurn(tc, b), nil
	}
	if wrapped {
		b.TurnOrder.Round++
		b.CurrentTurn++
		for i := range b.TurnOrder.Entries {
			b.TurnOrder.Entries[i].HasActed = false
		}
		// End-of-round tick for everyone but the actor, who already
		// ticked in the End phase.
		for i := range b.Participants {
			p := &b.Participants[i]
			if p.ParticipantID != actorID && !p.Defeated() {
				e.tickStatusEffects(tc, p)
			}
		}
		// The turn limit is always implicitly checked.
		if b.CurrentTurn > b.MaxTurns {
			e.endBattle(b, game.WinnerDraw, game.ReasonTimeout, "Turn limit reached; the battle ends in a draw.")
			tc.note(b.Message)
			return e.finishTurn(tc, b), nil
		}
	}

	if e.evaluateConditions(tc, b, game.CheckEndTurn) {
		return e.finishTurn(tc, b), nil
	}

	return e.finishTurn(tc, b), nil
}

// PassTurn advances past the current actor without resolving an action:
// the auto-pass for a participant with nothing usable. Status effects
// still tick and end conditions are still evaluated.
func (e *Engine) PassTurn(b *game.Battle, actorID string) ([]game.CombatLogEntry, error) {
	if b.Status != game.StatusActive {
		return nil, ErrBattleNotActive
	}
	actor := b.ParticipantByID(actorID)
	if actor == nil {
		return nil, ErrActorUnknown
	}
	cur := b.TurnOrder.Current()
	if cur == nil {
		return nil, e.failInvariant(b, "turn cursor out of range")
	}
	if cur.ParticipantID != actorID {
		return nil, ErrNotYourTurn
	}

	tc := newTurnContext(b)
	tc.setPhase(game.PhaseAction)
	tc.log(game.LogInfo, actorID, nil, 0, false, fmt.Sprintf("%s passes", actor.Name))

	tc.setPhase(game.PhaseEnd)
	e.tickStatusEffects(tc, actor)

	tc.setPhase(game.PhaseCleanup)
	for i := range actor.Actions {
		if actor.Actions[i].Cooldown > 0 {
			actor.Actions[i].Cooldown--
		}
	}
	cur.HasActed = true

	wrapped, stalled := AdvanceTurnOrder(b, &b.TurnOrder)
	if stalled {
		e.endBattle(b, game.WinnerDraw, game.ReasonNoActors, "No participant can act; the battle ends in a draw.")
		tc.note(b.Message)
		return e.finishTurn(tc, b), nil
	}
	if wrapped {
		b.TurnOrder.Round++
		b.CurrentTurn++
		for i := range b.TurnOrder.Entries {
			b.TurnOrder.Entries[i].HasActed = false
		}
		for i := range b.Participants {
			p := &b.Participants[i]
			if p.ParticipantID != actorID && !p.Defeated() {
				e.tickStatusEffects(tc, p)
			}
		}
		if b.CurrentTurn > b.MaxTurns {
			e.endBattle(b, game.WinnerDraw, game.ReasonTimeout, "Turn limit reached; the battle ends in a draw.")
			tc.note(b.Message)
			return e.finishTurn(tc, b), nil
		}
	}

	e.evaluateConditions(tc, b, game.CheckEndTurn)
	return e.finishTurn(tc, b), nil
}

// validateAction performs the selectability checks without mutating state.
func (e *Engine) validateAction(actor *game.Participant, actionID string) error {
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
	st := actor.CurrentStats
	if st.Mana < def.Costs.Mana || st.Energy < def.Costs.Energy || st.Health <= def.Costs.Health {
		return ErrInsufficientResources
	}
	return nil
}

// checkInvariants verifies core health bounds after a resolution. A
// violation is a bug in the engine, fatal to the battle.
func (e *Engine) checkInvariants(b *game.Battle) error {
	for i := range b.Participants {
		p := &b.Participants[i]
		if p.CurrentStats.Health < 0 || p.CurrentStats.Health > p.MaxStats.Health {
			return e.failInvariant(b, fmt.Sprintf("participant %s health %d out of range [0, %d]",
				p.ParticipantID, p.CurrentStats.Health, p.MaxStats.Health))
		}
	}
	if n := len(b.TurnOrder.Entries); n > 0 && (b.TurnOrder.CurrentIndex < 0 || b.TurnOrder.CurrentIndex >= n) {
		return e.failInvariant(b, fmt.Sprintf("turn index %d out of range", b.TurnOrder.CurrentIndex))
	}
	return nil
}

// failInvariant transitions the battle to the error status. The battle has
// no winner; the host presents it as not completable.
func (e *Engine) failInvariant(b *game.Battle, detail string) error {
	b.Status = game.StatusError
	b.Winner = ""
	b.Reason = "InvariantViolation"
	b.Message = "The battle could not be completed."
	now := time.Now()
	b.EndedAt = &now
	return fmt.Errorf("%w: %s", ErrInvariant, detail)
}

// endBattle marks the battle completed with the given outcome.
func (e *Engine) endBattle(b *game.Battle, winner, reason, message string) {
	if b.Status.Terminal() {
		return
	}
	b.Status = game.StatusCompleted
	b.Winner = winner
	b.Reason = reason
	b.Message = message
	now := time.Now()
	b.EndedAt = &now
}

// Abandon transitions a battle to the abandoned status. Only legal between
// turns; the service layer serializes this against in-flight resolutions.
func (e *Engine) Abandon(b *game.Battle) error {
	if b.Status.Terminal() {
		return ErrBattleNotActive
	}
	b.Status = game.StatusAbandoned
	b.Winner = ""
	b.Reason = game.ReasonAbandoned
	b.Message = "The battle was abandoned."
	now := time.Now()
	b.EndedAt = &now
	return nil
}

// finishTurn flushes the turn's log entries onto the battle.
func (e *Engine) finishTurn(tc *turnContext, b *game.Battle) []game.CombatLogEntry {
	return tc.flush()
}
