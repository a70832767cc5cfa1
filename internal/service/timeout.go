package service

import (
	"errors"
	"time"

	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/engine"
	"github.com/soltgard/battleforge/internal/game"
	"github.com/soltgard/battleforge/internal/logging"
)

// HandleTimedOutBattle resolves a battle whose action deadline has passed.
// The stalled participant's turn is auto-played through the decision
// engine, whether it is a forgotten AI turn the client never polled for or
// a human who walked away. A battle the scanner cannot recover (no current
// actor) is closed as a draw.
func HandleTimedOutBattle(repo BattleRepo, eng *engine.Engine, battleID uint, actionTimeout time.Duration) error {
	unlock := lockBattle(battleID)
	defer unlock()

	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return ErrBattleNotFound
	}
	if b.Status != game.StatusActive {
		return nil
	}
	if b.ActionDeadline.IsZero() || time.Now().Before(b.ActionDeadline) {
		return nil
	}

	cur := b.TurnOrder.Current()
	if cur == nil {
		logging.Error("timed-out battle has no current actor; closing", nil, logging.Fields{constants.LogFieldBattleID: b.ID})
		b.Status = game.StatusCompleted
		b.Winner = game.WinnerDraw
		b.Reason = game.ReasonNoActors
		b.Message = "The battle ended due to inactivity."
		now := time.Now()
		b.EndedAt = &now
		finalizeBattle(repo, b)
		return repo.UpdateBattle(b)
	}
	actor := b.ParticipantByID(cur.ParticipantID)
	if actor == nil {
		return engine.ErrActorUnknown
	}

	logging.Info("auto-playing stalled turn", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldActorID:  actor.ParticipantID,
		constants.LogFieldTurn:     b.CurrentTurn,
	})

	if _, err := playTurn(eng, b, actor); err != nil {
		if errors.Is(err, engine.ErrInvariant) {
			finalizeBattle(repo, b)
			return repo.UpdateBattle(b)
		}
		// The auto-play itself was rejected (for example a cooldown the
		// decision engine missed). Pass instead so the battle cannot
		// wedge on one participant forever.
		logging.Error("auto-play rejected; passing turn", err, logging.Fields{
			constants.LogFieldBattleID: b.ID,
			constants.LogFieldActorID:  actor.ParticipantID,
		})
		if _, perr := eng.PassTurn(b, actor.ParticipantID); perr != nil {
			return perr
		}
	}

	if b.Status == game.StatusActive {
		b.ActionDeadline = time.Now().Add(actionTimeout)
	}
	finalizeBattle(repo, b)
	return repo.UpdateBattle(b)
}

// ScanTimedOutBattles is the periodic sweep the server runs in the
// background: every active battle past its deadline gets resolved. Errors
// on one battle never stop the sweep.
func ScanTimedOutBattles(repo interface {
	BattleRepo
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)
}, eng *engine.Engine, actionTimeout time.Duration) {
	battles, err := repo.FindTimedOutBattles(time.Now())
	if err != nil {
		logging.Error("timeout scan query failed", err, nil)
		return
	}
	for i := range battles {
		if err := HandleTimedOutBattle(repo, eng, battles[i].ID, actionTimeout); err != nil {
			logging.Error("failed to resolve timed-out battle", err, logging.Fields{constants.LogFieldBattleID: battles[i].ID})
		}
	}
}
