package service

import (
	"math/rand"
	"time"

	"github.com/soltgard/battleforge/internal/config"
	"github.com/soltgard/battleforge/internal/engine"
	"github.com/soltgard/battleforge/internal/game"
)

// Shared fixtures for the service tests: an in-memory repo and a small
// deterministic action table.

type mockBattleRepo struct {
	battles map[uint]*game.Battle
	records []*game.CombatRecord
	nextID  uint
	updates int
}

func newMockRepo() *mockBattleRepo {
	return &mockBattleRepo{battles: map[uint]*game.Battle{}}
}

func (m *mockBattleRepo) CreateBattle(b *game.Battle) error {
	m.nextID++
	b.ID = m.nextID
	m.battles[b.ID] = b
	return nil
}

func (m *mockBattleRepo) GetBattleByID(id uint) (*game.Battle, error) {
	if b, ok := m.battles[id]; ok {
		return b, nil
	}
	return nil, ErrBattleNotFound
}

func (m *mockBattleRepo) UpdateBattle(b *game.Battle) error {
	m.battles[b.ID] = b
	m.updates++
	return nil
}

func (m *mockBattleRepo) SaveCombatRecord(r *game.CombatRecord) error {
	m.records = append(m.records, r)
	return nil
}

func (m *mockBattleRepo) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var out []game.Battle
	for _, b := range m.battles {
		if b.Status == game.StatusActive && !b.ActionDeadline.IsZero() && !b.ActionDeadline.After(now) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func testActions() map[string]game.ActionDefinition {
	return map[string]game.ActionDefinition{
		"strike": {
			ID:        "strike",
			Name:      "Strike",
			Targeting: game.TargetingRule{Type: game.TargetSingle, Side: game.SideEnemies, MaxTargets: 1},
			Effects: []game.CombatEffect{{
				Type: game.EffectDamage,
				Calc: game.EffectCalculation{Base: 10, ScalingStat: game.StatAttack, ScalingPercent: 100},
			}},
		},
		"mend": {
			ID:        "mend",
			Name:      "Mend",
			Costs:     game.ActionCosts{Mana: 5},
			Targeting: game.TargetingRule{Type: game.TargetSingle, Side: game.SideAllies, MaxTargets: 1},
			Effects: []game.CombatEffect{{
				Type: game.EffectHealing,
				Calc: game.EffectCalculation{Base: 20},
			}},
		},
	}
}

func testProfiles() map[string]game.AIProfile {
	return map[string]game.AIProfile{
		"brute": {
			ID:   "brute",
			Name: "Brute",
			Priorities: []game.AIPriority{
				{Condition: "default", Weight: 0, Actions: []string{"strike"}},
			},
		},
	}
}

func testConfig() *config.LoadedConfig {
	return &config.LoadedConfig{
		Actions: testActions(),
		Environments: map[string]game.Environment{
			"training_grounds": {ID: "training_grounds", Name: "Training Grounds"},
		},
		AIProfiles: testProfiles(),
		BattleTypes: map[game.BattleType]config.BattleTypeConfig{
			game.BattleTraining: {
				Type:     game.BattleTraining,
				MaxTurns: 50,
				TieBreak: game.TieBreakPlayerFirst,
				Conditions: []game.BattleCondition{
					{Type: game.ConditionVictory, Kind: game.KindEliminateTeam, Team: game.TeamEnemy, Priority: 1, CheckTiming: game.CheckContinuous},
					{Type: game.ConditionDefeat, Kind: game.KindEliminateTeam, Team: game.TeamPlayer, Priority: 1, CheckTiming: game.CheckContinuous},
				},
				Rewards: game.Rewards{Experience: 100, Gold: 25},
			},
		},
		ActionTimeout: 30 * time.Second,
	}
}

func testEngine(seed int64) *engine.Engine {
	return engine.New(testActions(), testProfiles(), rand.New(rand.NewSource(seed)))
}

func heroSnapshot() game.CharacterSnapshot {
	return game.CharacterSnapshot{
		Name:    "Hero",
		Level:   5,
		Element: game.ElementFire,
		Stats: game.Stats{
			Health: 100, Mana: 50, Attack: 40, Defense: 10,
			Speed: 100, Accuracy: 100, CritDamage: 150,
		},
		ActionIDs: []string{"strike", "mend"},
	}
}

func slimeSnapshot() game.CharacterSnapshot {
	return game.CharacterSnapshot{
		Name:    "Slime",
		Level:   3,
		Element: game.ElementWater,
		Stats: game.Stats{
			Health: 30, Attack: 5, Defense: 0,
			Speed: 50, Accuracy: 100,
		},
		ActionIDs:   []string{"strike"},
		AIProfileID: "brute",
	}
}

// startTestBattle creates a hero-vs-slime training battle. The hero is
// faster, so it always owns the opening turn.
func startTestBattle(repo *mockBattleRepo, eng *engine.Engine) *game.Battle {
	b, err := StartBattle(repo, testConfig(), eng, StartBattleRequest{
		Type:         game.BattleTraining,
		PlayerRoster: []game.CharacterSnapshot{heroSnapshot()},
		EnemyRoster:  []game.CharacterSnapshot{slimeSnapshot()},
	})
	if err != nil {
		panic(err)
	}
	return b
}

func participantByName(b *game.Battle, name string) *game.Participant {
	for i := range b.Participants {
		if b.Participants[i].Name == name {
			return &b.Participants[i]
		}
	}
	return nil
}
