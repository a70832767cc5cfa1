package engine

import (
	"errors"
	"testing"

	"github.com/soltgard/battleforge/internal/game"
)

func TestProcessTurn_DuelScenario(t *testing.T) {
	e := testEngine(duelActions(), nil, 1)
	a := newParticipant("a", "A", game.TeamPlayer, game.Stats{Health: 200, Attack: 50, Speed: 100}, "basic_attack")
	b := newParticipant("b", "B", game.TeamEnemy, game.Stats{Health: 200, Attack: 10, Defense: 20, Speed: 50}, "basic_attack")
	battle := newDuel(e, a, b, 10)

	if cur := battle.TurnOrder.Current(); cur.ParticipantID != "a" {
		t.Fatalf("the faster participant must act first")
	}

	entries, err := e.ProcessTurn(battle, "a", "basic_attack", []string{"b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// floor(50 + 50 - 20/2) = 90, no crit, no variance, neutral elements.
	target := battle.ParticipantByID("b")
	if got := target.MaxStats.Health - target.CurrentStats.Health; got != 90 {
		t.Fatalf("expected 90 damage, got %d", got)
	}
	if len(entries) == 0 {
		t.Fatalf("expected log entries")
	}
	if len(battle.CombatLog) == 0 {
		t.Fatalf("entries must be flushed onto the battle log")
	}
	if cur := battle.TurnOrder.Current(); cur.ParticipantID != "b" {
		t.Fatalf("the turn must pass to b, cursor at %s", cur.ParticipantID)
	}
}

func TestProcessTurn_VictoryByElimination(t *testing.T) {
	e := testEngine(duelActions(), nil, 1)
	a := newParticipant("a", "A", game.TeamPlayer, game.Stats{Health: 100, Attack: 50, Speed: 100}, "basic_attack")
	b := newParticipant("b", "B", game.TeamEnemy, game.Stats{Health: 30, Speed: 50}, "basic_attack")
	battle := newDuel(e, a, b, 10)

	if _, err := e.ProcessTurn(battle, "a", "basic_attack", []string{"b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if battle.Status != game.StatusCompleted {
		t.Fatalf("expected completed battle, got %v", battle.Status)
	}
	if battle.Winner != string(game.TeamPlayer) {
		t.Fatalf("expected player victory, got %q", battle.Winner)
	}
	if battle.Reason != game.ReasonEliminated {
		t.Fatalf("expected elimination reason, got %q", battle.Reason)
	}
	if battle.EndedAt == nil {
		t.Fatalf("expected an end timestamp")
	}
	// Health clamps at zero even though damage exceeded remaining health.
	if h := battle.ParticipantByID("b").CurrentStats.Health; h != 0 {
		t.Fatalf("expected health clamped at 0, got %d", h)
	}
}

func TestProcessTurn_TurnLimitDraw(t *testing.T) {
	e := testEngine(duelActions(), nil, 1)
	a := newParticipant("a", "A", game.TeamPlayer, game.Stats{Health: 100, Speed: 100}, "guard")
	b := newParticipant("b", "B", game.TeamEnemy, game.Stats{Health: 100, Speed: 50}, "guard")
	battle := newDuel(e, a, b, 5)

	// Nobody ever deals damage; the battle must end in a timeout draw.
	for turn := 0; turn < 20 && battle.Status == game.StatusActive; turn++ {
		actor := battle.TurnOrder.Current().ParticipantID
		if _, err := e.ProcessTurn(battle, actor, "guard", nil); err != nil {
			t.Fatalf("unexpected error on turn %d: %v", turn, err)
		}
	}
	if battle.Status != game.StatusCompleted {
		t.Fatalf("expected the battle to complete, got %v", battle.Status)
	}
	if battle.Winner != game.WinnerDraw {
		t.Fatalf("expected a draw, got %q", battle.Winner)
	}
	if battle.Reason != game.ReasonTimeout {
		t.Fatalf("expected timeout reason, got %q", battle.Reason)
	}
	if battle.CurrentTurn <= battle.MaxTurns {
		t.Fatalf("draw must only trigger past the turn limit, at turn %d", battle.CurrentTurn)
	}
}

func TestProcessTurn_CooldownRejectionLeavesZeroMutation(t *testing.T) {
	actions := duelActions()
	strike := actions["basic_attack"]
	strike.Cooldown = 2
	actions["basic_attack"] = strike

	e := testEngine(actions, nil, 1)
	a := newParticipant("a", "A", game.TeamPlayer, game.Stats{Health: 200, Attack: 10, Speed: 100}, "basic_attack")
	b := newParticipant("b", "B", game.TeamEnemy, game.Stats{Health: 200, Attack: 10, Speed: 50}, "basic_attack", "guard")
	battle := newDuel(e, a, b, 10)

	if _, err := e.ProcessTurn(battle, "a", "basic_attack", []string{"b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.ProcessTurn(battle, "b", "guard", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a's strike is still cooling down; the attempt must change nothing.
	logLen := len(battle.CombatLog)
	healthBefore := battle.ParticipantByID("b").CurrentStats.Health
	turnBefore := battle.CurrentTurn
	cursorBefore := battle.TurnOrder.CurrentIndex

	_, err := e.ProcessTurn(battle, "a", "basic_attack", []string{"b"})
	if !errors.Is(err, ErrActionOnCooldown) {
		t.Fatalf("expected ErrActionOnCooldown, got %v", err)
	}
	if len(battle.CombatLog) != logLen {
		t.Fatalf("rejected action must produce zero log entries")
	}
	if battle.ParticipantByID("b").CurrentStats.Health != healthBefore {
		t.Fatalf("rejected action must not deal damage")
	}
	if battle.CurrentTurn != turnBefore || battle.TurnOrder.CurrentIndex != cursorBefore {
		t.Fatalf("rejected action must not advance the battle")
	}
}

func TestProcessTurn_CooldownOneBlocksFollowingTurn(t *testing.T) {
	actions := duelActions()
	strike := actions["basic_attack"]
	strike.Cooldown = 1
	actions["basic_attack"] = strike

	e := testEngine(actions, nil, 1)
	a := newParticipant("a", "A", game.TeamPlayer, game.Stats{Health: 200, Attack: 10, Speed: 100}, "basic_attack", "guard")
	b := newParticipant("b", "B", game.TeamEnemy, game.Stats{Health: 500, Speed: 50}, "guard")
	battle := newDuel(e, a, b, 20)

	if _, err := e.ProcessTurn(battle, "a", "basic_attack", []string{"b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.ProcessTurn(battle, "b", "guard", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Cooldown 1 must block the owner's very next turn.
	if _, err := e.ProcessTurn(battle, "a", "basic_attack", []string{"b"}); !errors.Is(err, ErrActionOnCooldown) {
		t.Fatalf("expected ErrActionOnCooldown on the following turn, got %v", err)
	}

	// The actor spends the blocked turn on something else; the cooldown
	// ticks down at the end of it and the strike is ready one turn later.
	if _, err := e.ProcessTurn(battle, "a", "guard", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.ProcessTurn(battle, "b", "guard", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.ProcessTurn(battle, "a", "basic_attack", []string{"b"}); err != nil {
		t.Fatalf("strike must be ready again, got %v", err)
	}
}

func TestPassTurn_AdvancesWithoutDamage(t *testing.T) {
	e := testEngine(duelActions(), nil, 1)
	a := newParticipant("a", "A", game.TeamPlayer, game.Stats{Health: 100, Speed: 100}, "basic_attack")
	b := newParticipant("b", "B", game.TeamEnemy, game.Stats{Health: 100, Speed: 50}, "basic_attack")
	battle := newDuel(e, a, b, 10)

	entries, err := e.PassTurn(battle, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("a pass still logs")
	}
	if cur := battle.TurnOrder.Current(); cur.ParticipantID != "b" {
		t.Fatalf("pass must advance the cursor, at %s", cur.ParticipantID)
	}
	if _, err := e.PassTurn(battle, "a"); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
}

func TestAbandon(t *testing.T) {
	e := testEngine(duelActions(), nil, 1)
	a := newParticipant("a", "A", game.TeamPlayer, game.Stats{Health: 100, Speed: 100}, "basic_attack")
	b := newParticipant("b", "B", game.TeamEnemy, game.Stats{Health: 100, Speed: 50}, "basic_attack")
	battle := newDuel(e, a, b, 10)

	if err := e.Abandon(battle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if battle.Status != game.StatusAbandoned || battle.Reason != game.ReasonAbandoned {
		t.Fatalf("expected abandoned status/reason, got %v/%q", battle.Status, battle.Reason)
	}
	if err := e.Abandon(battle); !errors.Is(err, ErrBattleNotActive) {
		t.Fatalf("abandoning twice must fail, got %v", err)
	}
}

func TestProcessTurn_Validation(t *testing.T) {
	e := testEngine(duelActions(), nil, 1)
	a := newParticipant("a", "A", game.TeamPlayer, game.Stats{Health: 100, Speed: 100}, "basic_attack")
	b := newParticipant("b", "B", game.TeamEnemy, game.Stats{Health: 100, Speed: 50}, "basic_attack")
	battle := newDuel(e, a, b, 10)

	if _, err := e.ProcessTurn(battle, "nobody", "basic_attack", nil); !errors.Is(err, ErrActorUnknown) {
		t.Fatalf("expected ErrActorUnknown, got %v", err)
	}
	if _, err := e.ProcessTurn(battle, "b", "basic_attack", nil); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if _, err := e.ProcessTurn(battle, "a", "fireball", nil); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	battle.Status = game.StatusPaused
	if _, err := e.ProcessTurn(battle, "a", "basic_attack", nil); !errors.Is(err, ErrBattleNotActive) {
		t.Fatalf("expected ErrBattleNotActive, got %v", err)
	}
}
