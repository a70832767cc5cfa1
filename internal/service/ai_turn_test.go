package service

import (
	"errors"
	"testing"
	"time"

	"github.com/soltgard/battleforge/internal/game"
)

func TestAdvanceAITurn_PlaysCurrentAIActor(t *testing.T) {
	repo := newMockRepo()
	eng := testEngine(1)
	b := startTestBattle(repo, eng)
	hero := participantByName(b, "Hero")

	// Hand the turn to the slime.
	if _, _, err := SubmitAction(repo, eng, b.ID, hero.ParticipantID, "mend", []string{hero.ParticipantID}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, entries, err := AdvanceAITurn(repo, eng, b.ID, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected log entries from the AI turn")
	}
	if got.Status != game.StatusActive {
		t.Fatalf("expected battle still active, got %v", got.Status)
	}
	hero = participantByName(got, "Hero")
	if hero.CurrentStats.Health >= hero.MaxStats.Health {
		t.Fatalf("expected the slime's strike to damage the hero")
	}
	if cur := got.TurnOrder.Current(); cur == nil || cur.ParticipantID != hero.ParticipantID {
		t.Fatalf("expected the turn to return to the hero")
	}
	if got.ActionDeadline.IsZero() {
		t.Fatalf("expected a fresh action deadline")
	}
}

func TestAdvanceAITurn_RejectsHumanTurn(t *testing.T) {
	repo := newMockRepo()
	eng := testEngine(1)
	b := startTestBattle(repo, eng)

	_, _, err := AdvanceAITurn(repo, eng, b.ID, time.Minute)
	if !errors.Is(err, ErrNotAIControlled) {
		t.Fatalf("expected ErrNotAIControlled, got %v", err)
	}
}

func TestAdvanceAITurn_PassesWhenNothingUsable(t *testing.T) {
	repo := newMockRepo()
	eng := testEngine(1)
	b := startTestBattle(repo, eng)
	hero := participantByName(b, "Hero")
	slime := participantByName(b, "Slime")

	if _, _, err := SubmitAction(repo, eng, b.ID, hero.ParticipantID, "mend", []string{hero.ParticipantID}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Put the slime's only action on cooldown so it must pass.
	slime.Actions[0].Cooldown = 3
	turnBefore := b.CurrentTurn

	got, _, err := AdvanceAITurn(repo, eng, b.ID, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != game.StatusActive {
		t.Fatalf("expected battle still active, got %v", got.Status)
	}
	if got.CurrentTurn != turnBefore+1 {
		t.Fatalf("expected the round to wrap after the pass, got turn %d", got.CurrentTurn)
	}
	hero = participantByName(got, "Hero")
	if hero.CurrentStats.Health != hero.MaxStats.Health {
		t.Fatalf("a passed turn must not deal damage")
	}
}
