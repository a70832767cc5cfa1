package engine

import (
	"errors"
	"math/rand"
	"time"

	"github.com/soltgard/battleforge/internal/game"
)

// Validation and rule errors. These are rejected before any battle state is
// mutated; callers surface them to the host as a rejected action.
var (
	ErrBattleNotActive       = errors.New("battle is not active")
	ErrNotYourTurn           = errors.New("it is not this participant's turn")
	ErrActorUnknown          = errors.New("actor is not part of this battle")
	ErrActorDefeated         = errors.New("actor is defeated")
	ErrUnknownAction         = errors.New("action is not available to this participant")
	ErrActionOnCooldown      = errors.New("action is on cooldown")
	ErrActionExhausted       = errors.New("action has no uses left")
	ErrInsufficientResources = errors.New("insufficient resources for action")
	ErrNoValidTargets        = errors.New("no valid targets for action")
)

// ErrInvariant marks a simulation invariant violation. It indicates a core
// bug: the battle is transitioned to the error status and callers must log
// the full battle state, never swallow it.
var ErrInvariant = errors.New("simulation invariant violated")

// maxStatusEffects caps the total number of status effects one participant
// can carry across all sources.
const maxStatusEffects = 10

// Engine runs battle simulations. It owns the single random source every
// draw flows through (initiative, hit/crit rolls, variance, AI choices), so
// a fixed seed replays a battle bit for bit. Action definitions and AI
// profiles are immutable configuration; the engine never writes to them.
type Engine struct {
	rng        *rand.Rand
	actions    map[string]game.ActionDefinition
	profiles   map[string]game.AIProfile
	maxEffects int
}

// New builds an engine over the given configuration tables. A nil rng gets
// a time-seeded source; tests pass rand.New(rand.NewSource(seed)).
func New(actions map[string]game.ActionDefinition, profiles map[string]game.AIProfile, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		rng:        rng,
		actions:    actions,
		profiles:   profiles,
		maxEffects: maxStatusEffects,
	}
}

// Action returns the immutable definition for an action id.
func (e *Engine) Action(id string) (game.ActionDefinition, bool) {
	def, ok := e.actions[id]
	return def, ok
}
