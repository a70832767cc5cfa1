package engine

import (
	"fmt"

	"github.com/soltgard/battleforge/internal/game"
)

// resolveTargets turns a targeting rule plus the caller's requested target
// ids into a concrete participant list. When the caller supplies no ids the
// rule auto-targets. Requested targets that fail the rule's restrictions
// are dropped with a log note; that is a skipped application, not an error.
func (e *Engine) resolveTargets(tc *turnContext, b *game.Battle, actor *game.Participant, def *game.ActionDefinition, requested []string) []*game.Participant {
	rule := def.Targeting

	if rule.Type == game.TargetSelf {
		return []*game.Participant{actor}
	}

	pool := e.candidatePool(b, actor, rule)
	if len(pool) == 0 {
		return nil
	}

	switch rule.Type {
	case game.TargetAll:
		return pool
	case game.TargetArea:
		anchor := e.pickRequested(tc, b, pool, requested, 1)
		if len(anchor) == 0 {
			anchor = []*game.Participant{pool[e.rng.Intn(len(pool))]}
		}
		out := make([]*game.Participant, 0, len(pool))
		for _, p := range pool {
			if p.Row == anchor[0].Row {
				out = append(out, p)
			}
		}
		return out
	case game.TargetLine:
		anchor := e.pickRequested(tc, b, pool, requested, 1)
		if len(anchor) == 0 {
			anchor = []*game.Participant{pool[e.rng.Intn(len(pool))]}
		}
		out := make([]*game.Participant, 0, len(pool))
		for _, p := range pool {
			if p.Col == anchor[0].Col {
				out = append(out, p)
			}
		}
		return out
	case game.TargetRandom:
		return []*game.Participant{pool[e.rng.Intn(len(pool))]}
	case game.TargetMultiple:
		max := rule.MaxTargets
		if max <= 0 {
			max = len(pool)
		}
		picked := e.pickRequested(tc, b, pool, requested, max)
		for len(picked) < max && len(picked) < len(pool) {
			cand := pool[e.rng.Intn(len(pool))]
			if !containsParticipant(picked, cand) {
				picked = append(picked, cand)
			}
		}
		return picked
	default: // TargetSingle
		picked := e.pickRequested(tc, b, pool, requested, 1)
		if len(picked) == 0 {
			picked = []*game.Participant{pool[e.rng.Intn(len(pool))]}
		}
		return picked
	}
}

// candidatePool filters the battle's participants by the rule's side and
// restrictions, relative to the actor.
func (e *Engine) candidatePool(b *game.Battle, actor *game.Participant, rule game.TargetingRule) []*game.Participant {
	var teams []game.Team
	switch rule.Side {
	case game.SideAllies:
		teams = []game.Team{actor.Team}
	case game.SideAny:
		teams = []game.Team{game.TeamPlayer, game.TeamEnemy}
	default: // SideEnemies
		teams = []game.Team{actor.Team.Opponent()}
	}

	out := make([]*game.Participant, 0, len(b.Participants))
	for i := range b.Participants {
		p := &b.Participants[i]
		ok := false
		for _, t := range teams {
			if p.Team == t {
				ok = true
			}
		}
		if ok && passesRestrictions(p, rule.Restrictions) {
			out = append(out, p)
		}
	}
	return out
}

// passesRestrictions applies the named candidate filters. An empty list
// defaults to living targets only.
func passesRestrictions(p *game.Participant, restrictions []string) bool {
	if len(restrictions) == 0 {
		return !p.Defeated()
	}
	for _, r := range restrictions {
		switch r {
		case "alive":
			if p.Defeated() {
				return false
			}
		case "dead":
			if !p.Defeated() {
				return false
			}
		case "damaged":
			if p.Defeated() || p.CurrentStats.Health >= p.MaxStats.Health {
				return false
			}
		}
	}
	return true
}

// pickRequested keeps the caller-supplied targets that are present in the
// candidate pool, up to max, logging a note for each dropped id.
func (e *Engine) pickRequested(tc *turnContext, b *game.Battle, pool []*game.Participant, requested []string, max int) []*game.Participant {
	out := make([]*game.Participant, 0, max)
	for _, id := range requested {
		if len(out) >= max {
			break
		}
		found := false
		for _, p := range pool {
			if p.ParticipantID == id {
				if !containsParticipant(out, p) {
					out = append(out, p)
				}
				found = true
				break
			}
		}
		if !found {
			name := id
			if p := b.ParticipantByID(id); p != nil {
				name = p.Name
			}
			tc.note(fmt.Sprintf("%s is not a legal target; skipped", name))
		}
	}
	return out
}

func containsParticipant(list []*game.Participant, p *game.Participant) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
