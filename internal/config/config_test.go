package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soltgard/battleforge/internal/game"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "battleforge_config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	return path
}

const validConfig = `{
  "actions": [
    {
      "id": "basic_attack",
      "name": "Basic Attack",
      "targeting": {"type": "single", "side": "enemies", "max_targets": 1},
      "effects": [{"type": "damage", "calc": {"base": 10, "scaling_stat": "attack", "scaling_percent": 100}}]
    },
    {
      "name": "Healing Light",
      "costs": {"mana": 5},
      "targeting": {"type": "single", "side": "allies", "max_targets": 1},
      "effects": [{"type": "healing", "calc": {"base": 20}}]
    }
  ],
  "environments": [
    {"id": "volcano", "name": "Volcano", "effects": []}
  ],
  "ai_profiles": [
    {
      "id": "brute",
      "name": "Brute",
      "priorities": [{"condition": "default", "actions": ["basic_attack"], "weight": 0}]
    }
  ],
  "battle_types": [
    {"type": "training", "max_turns": 30, "tie_break": "player_first", "rewards": {"experience": 100, "gold": 25}}
  ],
  "server": {"address": ":9090"},
  "action_timeout_seconds": 45
}`

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cfg.Actions["basic_attack"]; !ok {
		t.Fatalf("expected basic_attack in the action table")
	}
	// The second action has no id; it is derived from the name.
	if _, ok := cfg.Actions["healing_light"]; !ok {
		t.Fatalf("expected healing_light derived from the action name, got %v", keysOf(cfg.Actions))
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.ServerAddress)
	}
	if cfg.ActionTimeout != 45*time.Second {
		t.Fatalf("expected 45s action timeout, got %s", cfg.ActionTimeout)
	}
	if _, ok := cfg.AIProfiles["brute"]; !ok {
		t.Fatalf("expected the brute profile to load")
	}
}

func keysOf(m map[string]game.ActionDefinition) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestLoadConfig_DefaultEnvironmentInjected(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env := cfg.Environment("no_such_place")
	if env.ID != "training_grounds" {
		t.Fatalf("unknown environment must fall back to training grounds, got %s", env.ID)
	}
	if got := cfg.Environment("volcano"); got.ID != "volcano" {
		t.Fatalf("known environment must resolve, got %s", got.ID)
	}
}

func TestLoadConfig_BattleTypeDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bt := cfg.BattleType(game.BattleTraining)
	if bt.MaxTurns != 30 || bt.TieBreak != game.TieBreakPlayerFirst {
		t.Fatalf("explicit battle type fields must survive, got %+v", bt)
	}
	// Conditions were omitted in the file: the standard eliminate pair fills in.
	if len(bt.Conditions) != 2 {
		t.Fatalf("expected default conditions, got %d", len(bt.Conditions))
	}

	other := cfg.BattleType(game.BattleType("arena"))
	if other.MaxTurns <= 0 || other.TieBreak == "" || len(other.Conditions) != 2 {
		t.Fatalf("unlisted battle type must get full defaults, got %+v", other)
	}
}

func TestLoadConfig_EmptyActions(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{"actions": []}`))
	if err == nil || !strings.Contains(err.Error(), "actions is empty") {
		t.Fatalf("expected empty-actions error, got %v", err)
	}
}

func TestLoadConfig_DuplicateActionID(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{
  "actions": [
    {"id": "strike", "name": "Strike"},
    {"id": "strike", "name": "Strike Again"}
  ]
}`))
	if err == nil || !strings.Contains(err.Error(), "duplicate action id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestLoadConfig_StatusEffectWithoutDefinition(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{
  "actions": [
    {"id": "curse", "name": "Curse", "effects": [{"type": "status"}]}
  ]
}`))
	if err == nil || !strings.Contains(err.Error(), "no status definition") {
		t.Fatalf("expected missing status definition error, got %v", err)
	}
}

func TestLoadConfig_ProfileWithUnknownAction(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{
  "actions": [{"id": "strike", "name": "Strike"}],
  "ai_profiles": [
    {"id": "brute", "priorities": [{"condition": "default", "actions": ["fireball"]}]}
  ]
}`))
	if err == nil || !strings.Contains(err.Error(), "unknown action 'fireball'") {
		t.Fatalf("expected unknown action reference error, got %v", err)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestLoadConfig_ActionMissingIDAndName(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{"actions": [{"cooldown": 2}]}`))
	if err == nil || !strings.Contains(err.Error(), "missing both 'id' and 'name'") {
		t.Fatalf("expected missing id/name error, got %v", err)
	}
}
