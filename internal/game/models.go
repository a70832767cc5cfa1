package game

import (
	"time"

	"gorm.io/gorm"
)

// Stats is the numeric stat block shared by current and maximum values.
// Resistances maps element -> percentage reduction applied to incoming
// damage of that element; it is serialized as JSON rather than mapped to
// columns because the set of elements is fixed config, not relational data.
type Stats struct {
	Health         int           `json:"health"`
	Mana           int           `json:"mana"`
	Attack         int           `json:"attack"`
	Defense        int           `json:"defense"`
	Speed          int           `json:"speed"`
	Energy         int           `json:"energy"`
	Accuracy       int           `json:"accuracy"`
	Evasion        int           `json:"evasion"`
	CritRate       int           `json:"crit_rate"`
	CritDamage     int           `json:"crit_damage"`
	Luck           int           `json:"luck"`
	ElementalPower int           `json:"elemental_power"`
	Resistances    ResistanceMap `json:"resistances" gorm:"serializer:json"`
}

// ResistanceMap maps an element to a flat percentage resistance (0-100).
type ResistanceMap map[Element]int

// StatusEffectData is one stat modification carried by a status effect.
type StatusEffectData struct {
	Stat  StatName   `json:"stat"`
	Value float64    `json:"value"`
	Kind  ValueKind  `json:"kind"`
	Op    ModifierOp `json:"op"`
}

// StatusEffect is a timed, stacking modifier attached to a participant.
// Duration -1 means permanent; 0 means expired this tick. Effects live
// inside the owning participant row as JSON: they have no identity outside
// the participant and are rewritten wholesale on every mutation.
type StatusEffect struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Type        StatusEffectType   `json:"type"`
	Category    string             `json:"category"`
	Duration    int                `json:"duration"`
	MaxDuration int                `json:"max_duration"`
	Stacks      int                `json:"stacks"`
	MaxStacks   int                `json:"max_stacks"`
	Data        []StatusEffectData `json:"data"`
	Dispellable bool               `json:"dispellable"`
	// TickInterval gates periodic damage/healing: the effect ticks when
	// (MaxDuration - Duration) is a positive multiple of the interval.
	TickInterval int `json:"tick_interval"`
	TickDamage   int `json:"tick_damage"`
	TickHealing  int `json:"tick_healing"`
	// Ticks counts how many end-of-turn ticks this effect has received.
	// Maintained by the ledger; lets permanent effects keep a periodic
	// cadence without a duration to count down.
	Ticks int `json:"ticks"`
}

// Permanent reports whether the effect never expires on its own.
func (e *StatusEffect) Permanent() bool { return e.Duration < 0 }

// ActionInstance is the per-battle mutable state of one action slot on a
// participant. The immutable definition (costs, targeting, effects) lives
// in configuration and is looked up by ActionID.
type ActionInstance struct {
	ActionID string `json:"action_id"`
	Cooldown int    `json:"cooldown"`
	Uses     int    `json:"uses"`
}

// ActionCosts are the resources deducted from the actor before effects run.
type ActionCosts struct {
	Mana   int `json:"mana"`
	Health int `json:"health"`
	Energy int `json:"energy"`
}

// TargetingRule describes how an action's concrete target list is resolved.
type TargetingRule struct {
	Type       TargetingType `json:"type"`
	Side       TargetSide    `json:"side"`
	MaxTargets int           `json:"max_targets"`
	// Restrictions are named filters applied to the candidate pool, e.g.
	// "alive", "dead", "damaged".
	Restrictions []string `json:"restrictions"`
}

// EffectCalculation is the numeric recipe for a damage or healing effect.
type EffectCalculation struct {
	Base           int      `json:"base"`
	ScalingStat    StatName `json:"scaling_stat"`
	ScalingPercent int      `json:"scaling_percent"`
	// Variance is the half-width, in percent, of the uniform random
	// multiplier applied to the computed value (0 = no variance).
	Variance int `json:"variance"`
}

// CombatEffect is one effect carried by an action. Each EffectType variant
// uses only the fields it needs; Status is set only for status effects.
type CombatEffect struct {
	Type    EffectType        `json:"type"`
	Calc    EffectCalculation `json:"calc"`
	Element Element           `json:"element"`
	Status  *StatusEffect     `json:"status,omitempty"`
	// CanMiss and CanCrit are explicit so healing and status application
	// only roll hit/crit when the definition asks for it.
	CanMiss bool `json:"can_miss"`
	CanCrit bool `json:"can_crit"`
}

// ActionDefinition is an immutable ability definition from configuration.
type ActionDefinition struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Costs        ActionCosts    `json:"costs"`
	Requirements []string       `json:"requirements"`
	Targeting    TargetingRule  `json:"targeting"`
	Effects      []CombatEffect `json:"effects"`
	Cooldown     int            `json:"cooldown"`
	// MaxUses 0 means unlimited.
	MaxUses  int `json:"max_uses"`
	CastTime int `json:"cast_time"`
	Range    int `json:"range"`
	Priority int `json:"priority"`
}

// Usable reports whether the given per-battle state allows selecting this
// action: off cooldown and under the use limit.
func (d *ActionDefinition) Usable(inst *ActionInstance) bool {
	if inst.Cooldown > 0 {
		return false
	}
	if d.MaxUses > 0 && inst.Uses >= d.MaxUses {
		return false
	}
	return true
}

// AIPriority is one weighted rule of an AI behavior profile. Rules are
// evaluated in descending weight order; the first whose condition holds
// selects the allowed action set.
type AIPriority struct {
	Condition string   `json:"condition"`
	Weight    int      `json:"weight"`
	Actions   []string `json:"actions"`
}

// AIProfile is a named behavior table for AI-controlled participants.
type AIProfile struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Priorities []AIPriority `json:"priorities"`
	// HealthThreshold is the percentage under which "self_health_low" and
	// "enemy_health_low" conditions hold. Defaults to 30 when zero.
	HealthThreshold int `json:"health_threshold"`
}

// Environment is a static arena definition. Its effects are applied to all
// participants at battle start as environmental status effects.
type Environment struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Effects     []StatusEffect `json:"effects"`
}

// BattleCondition is one victory/defeat rule evaluated during the turn
// cycle. Lower Priority wins when several conditions fire at once.
type BattleCondition struct {
	Type        ConditionType `json:"type"`
	Kind        ConditionKind `json:"kind"`
	Team        Team          `json:"team"`
	Turns       int           `json:"turns"`
	Priority    int           `json:"priority"`
	CheckTiming CheckTiming   `json:"check_timing"`
	Winner      string        `json:"winner"`
	Reason      string        `json:"reason"`
}

// Rewards are granted to the winning roster and folded into the record.
type Rewards struct {
	Experience int `json:"experience"`
	Gold       int `json:"gold"`
}

// TurnOrderEntry is one participant's slot in the initiative order.
type TurnOrderEntry struct {
	ParticipantID string  `json:"participant_id"`
	Speed         int     `json:"speed"`
	Initiative    float64 `json:"initiative"`
	DelayedTurns  int     `json:"delayed_turns"`
	HasActed      bool    `json:"has_acted"`
	CanAct        bool    `json:"can_act"`
}

// TurnOrder is the computed initiative sequence plus the cursor into it.
type TurnOrder struct {
	Entries      []TurnOrderEntry `json:"entries"`
	CurrentIndex int              `json:"current_index"`
	Round        int              `json:"round"`
}

// Current returns the entry the cursor points at, or nil when empty.
func (o *TurnOrder) Current() *TurnOrderEntry {
	if len(o.Entries) == 0 || o.CurrentIndex < 0 || o.CurrentIndex >= len(o.Entries) {
		return nil
	}
	return &o.Entries[o.CurrentIndex]
}

// Participant is one combatant instance inside a battle, snapshotted from a
// persistent character at battle start. Defeat is a state (health 0), never
// a removal: defeated participants stay visible in the log and the UI.
type Participant struct {
	gorm.Model
	BattleID      uint    `json:"-"`
	ParticipantID string  `json:"participant_id" gorm:"index"`
	Name          string  `json:"name"`
	Team          Team    `json:"team"`
	Level         int     `json:"level"`
	Row           int     `json:"row"`
	Col           int     `json:"col"`
	Element       Element `json:"element"`

	CurrentStats Stats `json:"current_stats" gorm:"embedded;embeddedPrefix:cur_"`
	MaxStats     Stats `json:"max_stats" gorm:"embedded;embeddedPrefix:max_"`

	StatusEffects []StatusEffect   `json:"status_effects" gorm:"serializer:json"`
	Actions       []ActionInstance `json:"actions" gorm:"serializer:json"`

	// AIProfileID empty means human controlled.
	AIProfileID string `json:"ai_profile_id"`

	Shield          int `json:"shield"`
	Barrier         int `json:"barrier"`
	TransformCharge int `json:"transform_charge"`
}

// Defeated reports whether this participant is out of the fight.
func (p *Participant) Defeated() bool { return p.CurrentStats.Health <= 0 }

// ActionState returns the mutable slot for the given action id, or nil when
// the participant does not know the action.
func (p *Participant) ActionState(actionID string) *ActionInstance {
	for i := range p.Actions {
		if p.Actions[i].ActionID == actionID {
			return &p.Actions[i]
		}
	}
	return nil
}

// CombatLogEntry is one immutable record of something that happened in a
// battle. Entries are append-only and never mutated after creation.
type CombatLogEntry struct {
	gorm.Model
	BattleID    uint      `json:"-" gorm:"index"`
	Turn        int       `json:"turn"`
	Phase       TurnPhase `json:"phase"`
	Type        LogType   `json:"type"`
	ActorID     string    `json:"actor_id"`
	TargetIDs   []string  `json:"target_ids" gorm:"serializer:json"`
	Value       int       `json:"value"`
	Critical    bool      `json:"critical"`
	Description string    `json:"description"`
}

// Battle is the aggregate root for one simulation. It is mutated only by
// the battle state machine and the action resolver, always under the
// service layer's per-battle lock.
type Battle struct {
	gorm.Model
	Type          BattleType   `json:"type"`
	Status        BattleStatus `json:"status"`
	EnvironmentID string       `json:"environment_id"`

	Participants []Participant `json:"participants"`
	TurnOrder    TurnOrder     `json:"turn_order" gorm:"serializer:json"`

	CurrentTurn int `json:"current_turn"`
	MaxTurns    int `json:"max_turns"`

	Conditions []BattleCondition `json:"conditions" gorm:"serializer:json"`
	Rewards    Rewards           `json:"rewards" gorm:"embedded;embeddedPrefix:reward_"`
	TieBreak   TieBreakPolicy    `json:"tie_break"`

	Winner  string `json:"winner"`
	Reason  string `json:"reason"`
	Message string `json:"message"`

	CombatLog []CombatLogEntry `json:"combat_log"`

	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at"`
	ActionDeadline time.Time  `json:"action_deadline"`
	RecordWritten  bool       `json:"-"`
}

// TableName keeps the battles table name explicit.
func (Battle) TableName() string { return "battles" }

// ParticipantByID returns the participant with the given instance id.
func (b *Battle) ParticipantByID(id string) *Participant {
	for i := range b.Participants {
		if b.Participants[i].ParticipantID == id {
			return &b.Participants[i]
		}
	}
	return nil
}

// TeamMembers returns all participants on the given team.
func (b *Battle) TeamMembers(t Team) []*Participant {
	out := make([]*Participant, 0, len(b.Participants))
	for i := range b.Participants {
		if b.Participants[i].Team == t {
			out = append(out, &b.Participants[i])
		}
	}
	return out
}

// LivingMembers returns the non-defeated participants on the given team.
func (b *Battle) LivingMembers(t Team) []*Participant {
	out := make([]*Participant, 0, len(b.Participants))
	for i := range b.Participants {
		if b.Participants[i].Team == t && !b.Participants[i].Defeated() {
			out = append(out, &b.Participants[i])
		}
	}
	return out
}

// CombatRecord is the post-battle analytic summary, written exactly once
// when a battle completes and immutable afterward.
type CombatRecord struct {
	gorm.Model
	BattleID     uint       `json:"battle_id" gorm:"uniqueIndex"`
	BattleType   BattleType `json:"battle_type"`
	Result       string     `json:"result"`
	Winner       string     `json:"winner"`
	Reason       string     `json:"reason"`
	Turns        int        `json:"turns"`
	TotalDamage  int        `json:"total_damage"`
	TotalHealing int        `json:"total_healing"`
	MVPID        string     `json:"mvp_id"`
	MVPName      string     `json:"mvp_name"`
	Experience   int        `json:"experience"`
	Gold         int        `json:"gold"`
	DurationSecs int        `json:"duration_secs"`
}

// TableName stores records under a purpose-named table.
func (CombatRecord) TableName() string { return "combat_records" }

// CharacterSnapshot is the inbound shape used to build a participant at
// battle start. It is not persisted; the participant is the battle-local
// copy and the persistent character record stays untouched.
type CharacterSnapshot struct {
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Element     Element  `json:"element"`
	Stats       Stats    `json:"stats"`
	ActionIDs   []string `json:"action_ids"`
	AIProfileID string   `json:"ai_profile_id"`
	Row         int      `json:"row"`
	Col         int      `json:"col"`
}
