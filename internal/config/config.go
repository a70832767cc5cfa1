package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/game"
	"github.com/soltgard/battleforge/internal/keys"
)

// BattleTypeConfig bundles the static rules for one battle type: how long
// it may run, how ties are broken, the end conditions and the rewards.
type BattleTypeConfig struct {
	Type       game.BattleType        `json:"type"`
	MaxTurns   int                    `json:"max_turns"`
	TieBreak   game.TieBreakPolicy    `json:"tie_break"`
	Conditions []game.BattleCondition `json:"conditions"`
	Rewards    game.Rewards           `json:"rewards"`
}

type rawConfig struct {
	Actions      []game.ActionDefinition `json:"actions"`
	Environments []game.Environment      `json:"environments"`
	AIProfiles   []game.AIProfile        `json:"ai_profiles"`
	BattleTypes  []BattleTypeConfig      `json:"battle_types"`
	Server       *struct {
		Address string `json:"address"`
	} `json:"server"`
	ActionTimeoutSeconds int `json:"action_timeout_seconds"`
}

// LoadedConfig holds the immutable data tables the engine and service run
// on. The core treats all of it as read-only configuration.
type LoadedConfig struct {
	Actions       map[string]game.ActionDefinition
	Environments  map[string]game.Environment
	AIProfiles    map[string]game.AIProfile
	BattleTypes   map[game.BattleType]BattleTypeConfig
	ServerAddress string
	ActionTimeout time.Duration
}

// LoadConfig reads the configuration file at path, validates cross-entry
// integrity (unique ids, resolvable references) and returns the lookup
// tables. It requires a non-empty `actions` array.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.Actions) == 0 {
		return nil, fmt.Errorf("config file %s: actions is empty (provide an 'actions' array)", path)
	}

	actions := make(map[string]game.ActionDefinition, len(rc.Actions))
	for _, a := range rc.Actions {
		if strings.TrimSpace(a.ID) == "" {
			a.ID = keys.KeyFromName(a.Name)
		}
		if a.ID == "" {
			return nil, fmt.Errorf("config file %s: action entry missing both 'id' and 'name'", path)
		}
		if _, exists := actions[a.ID]; exists {
			return nil, fmt.Errorf("config file %s: duplicate action id '%s'", path, a.ID)
		}
		for i, eff := range a.Effects {
			if eff.Type == game.EffectStatus && eff.Status == nil {
				return nil, fmt.Errorf("config file %s: action '%s' effect %d is a status effect but carries no status definition", path, a.ID, i)
			}
		}
		actions[a.ID] = a
	}

	environments := make(map[string]game.Environment, len(rc.Environments))
	for _, env := range rc.Environments {
		if strings.TrimSpace(env.ID) == "" {
			env.ID = keys.KeyFromName(env.Name)
		}
		if env.ID == "" {
			return nil, fmt.Errorf("config file %s: environment entry missing both 'id' and 'name'", path)
		}
		if _, exists := environments[env.ID]; exists {
			return nil, fmt.Errorf("config file %s: duplicate environment id '%s'", path, env.ID)
		}
		environments[env.ID] = env
	}
	if _, ok := environments[constants.DefaultEnvironmentID]; !ok {
		environments[constants.DefaultEnvironmentID] = game.Environment{
			ID:          constants.DefaultEnvironmentID,
			Name:        "Training Grounds",
			Description: "A neutral arena with no environmental effects.",
		}
	}

	profiles := make(map[string]game.AIProfile, len(rc.AIProfiles))
	for _, p := range rc.AIProfiles {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("config file %s: ai profile entry missing 'id'", path)
		}
		if _, exists := profiles[p.ID]; exists {
			return nil, fmt.Errorf("config file %s: duplicate ai profile id '%s'", path, p.ID)
		}
		for _, rule := range p.Priorities {
			for _, actionID := range rule.Actions {
				if _, ok := actions[actionID]; !ok {
					return nil, fmt.Errorf("config file %s: ai profile '%s' references unknown action '%s'", path, p.ID, actionID)
				}
			}
		}
		profiles[p.ID] = p
	}

	battleTypes := make(map[game.BattleType]BattleTypeConfig, len(rc.BattleTypes))
	for _, bt := range rc.BattleTypes {
		if bt.Type == "" {
			return nil, fmt.Errorf("config file %s: battle type entry missing 'type'", path)
		}
		if _, exists := battleTypes[bt.Type]; exists {
			return nil, fmt.Errorf("config file %s: duplicate battle type '%s'", path, bt.Type)
		}
		if bt.MaxTurns <= 0 {
			bt.MaxTurns = constants.DefaultMaxTurns
		}
		if bt.TieBreak == "" {
			bt.TieBreak = game.TieBreakRandom
		}
		if len(bt.Conditions) == 0 {
			bt.Conditions = defaultConditions()
		}
		battleTypes[bt.Type] = bt
	}

	addr := constants.DefaultAddress
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	timeout := constants.DefaultActionTimeout
	if rc.ActionTimeoutSeconds > 0 {
		timeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}

	return &LoadedConfig{
		Actions:       actions,
		Environments:  environments,
		AIProfiles:    profiles,
		BattleTypes:   battleTypes,
		ServerAddress: addr,
		ActionTimeout: timeout,
	}, nil
}

// BattleType returns the rules for a battle type, falling back to a
// default rule set when the type has no explicit entry.
func (c *LoadedConfig) BattleType(t game.BattleType) BattleTypeConfig {
	if bt, ok := c.BattleTypes[t]; ok {
		return bt
	}
	return BattleTypeConfig{
		Type:       t,
		MaxTurns:   constants.DefaultMaxTurns,
		TieBreak:   game.TieBreakRandom,
		Conditions: defaultConditions(),
	}
}

// Environment resolves an environment id, falling back to the neutral
// training grounds when the id is unknown. The fallback is deliberate:
// a bad environment reference degrades the battle, it does not fail it.
func (c *LoadedConfig) Environment(id string) game.Environment {
	if env, ok := c.Environments[id]; ok {
		return env
	}
	return c.Environments[constants.DefaultEnvironmentID]
}

// defaultConditions is the standard win/lose pair: eliminate the enemy
// roster to win, lose your own to lose.
func defaultConditions() []game.BattleCondition {
	return []game.BattleCondition{
		{Type: game.ConditionVictory, Kind: game.KindEliminateTeam, Team: game.TeamEnemy, Priority: 1, CheckTiming: game.CheckContinuous, Winner: string(game.TeamPlayer)},
		{Type: game.ConditionDefeat, Kind: game.KindEliminateTeam, Team: game.TeamPlayer, Priority: 1, CheckTiming: game.CheckContinuous, Winner: string(game.TeamEnemy)},
	}
}
