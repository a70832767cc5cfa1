package game

// BattleType classifies where a battle came from. Rewards and victory
// conditions are looked up per type from the static configuration.
type BattleType string

const (
	BattleTraining BattleType = "training"
	BattleMission  BattleType = "mission"
	BattleArena    BattleType = "arena"
	BattleBoss     BattleType = "boss"
)

// BattleStatus is the lifecycle state of a battle. Completed, abandoned and
// error are terminal: no further turns are processed once one is set.
type BattleStatus string

const (
	StatusPreparing BattleStatus = "preparing"
	StatusActive    BattleStatus = "active"
	StatusPaused    BattleStatus = "paused"
	StatusCompleted BattleStatus = "completed"
	StatusAbandoned BattleStatus = "abandoned"
	StatusError     BattleStatus = "error"
)

// Terminal reports whether no further turns may be processed.
func (s BattleStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned || s == StatusError
}

// Team identifies which roster a participant belongs to.
type Team string

const (
	TeamPlayer Team = "player"
	TeamEnemy  Team = "enemy"
)

// Opponent returns the opposing team.
func (t Team) Opponent() Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}

// TieBreakPolicy decides ordering between participants with equal speed.
type TieBreakPolicy string

const (
	TieBreakRandom      TieBreakPolicy = "random"
	TieBreakPlayerFirst TieBreakPolicy = "player_first"
	TieBreakHigherLevel TieBreakPolicy = "higher_level"
)

// TurnPhase is the phase a log entry was produced in. One full turn cycle
// runs start -> action -> resolution -> end -> cleanup.
type TurnPhase string

const (
	PhaseStart      TurnPhase = "start"
	PhaseAction     TurnPhase = "action"
	PhaseResolution TurnPhase = "resolution"
	PhaseEnd        TurnPhase = "end"
	PhaseCleanup    TurnPhase = "cleanup"
)

// Element is one of the twelve combat elements. The advantage relation
// between elements is a fixed directed graph owned by the engine.
type Element string

const (
	ElementNone    Element = ""
	ElementFire    Element = "fire"
	ElementWater   Element = "water"
	ElementEarth   Element = "earth"
	ElementWind    Element = "wind"
	ElementIce     Element = "ice"
	ElementNature  Element = "nature"
	ElementThunder Element = "thunder"
	ElementPoison  Element = "poison"
	ElementLight   Element = "light"
	ElementShadow  Element = "shadow"
	ElementArcane  Element = "arcane"
	ElementSteel   Element = "steel"
)

// StatusEffectType groups status effects by origin and polarity.
type StatusEffectType string

const (
	EffectBuff          StatusEffectType = "buff"
	EffectDebuff        StatusEffectType = "debuff"
	EffectNeutral       StatusEffectType = "neutral"
	EffectTransform     StatusEffectType = "transform"
	EffectEnvironmental StatusEffectType = "environmental"
)

// StatName names a numeric stat a status effect modifier can touch.
type StatName string

const (
	StatHealth         StatName = "health"
	StatMana           StatName = "mana"
	StatEnergy         StatName = "energy"
	StatAttack         StatName = "attack"
	StatDefense        StatName = "defense"
	StatSpeed          StatName = "speed"
	StatAccuracy       StatName = "accuracy"
	StatEvasion        StatName = "evasion"
	StatCritRate       StatName = "crit_rate"
	StatCritDamage     StatName = "crit_damage"
	StatLuck           StatName = "luck"
	StatElementalPower StatName = "elemental_power"
)

// ValueKind says how a modifier value is interpreted.
type ValueKind string

const (
	ValueFlat       ValueKind = "flat"
	ValuePercentage ValueKind = "percentage"
	ValueMultiplier ValueKind = "multiplier"
)

// ModifierOp is the arithmetic applied by one StatusEffectData entry.
type ModifierOp string

const (
	OpAdd      ModifierOp = "add"
	OpSubtract ModifierOp = "subtract"
	OpMultiply ModifierOp = "multiply"
	OpDivide   ModifierOp = "divide"
	OpSet      ModifierOp = "set"
)

// TargetSide says which roster an action targets, relative to the actor.
type TargetSide string

const (
	SideEnemies TargetSide = "enemies"
	SideAllies  TargetSide = "allies"
	SideAny     TargetSide = "any"
)

// TargetingType is the shape of an action's target selection.
type TargetingType string

const (
	TargetSingle   TargetingType = "single"
	TargetMultiple TargetingType = "multiple"
	TargetArea     TargetingType = "area"
	TargetLine     TargetingType = "line"
	TargetAll      TargetingType = "all"
	TargetRandom   TargetingType = "random"
	TargetSelf     TargetingType = "self"
)

// EffectType is the closed set of things a combat effect can do.
type EffectType string

const (
	EffectDamage       EffectType = "damage"
	EffectHealing      EffectType = "healing"
	EffectStatus       EffectType = "status"
	EffectMovement     EffectType = "movement"
	EffectManipulation EffectType = "manipulation"
	EffectSpecial      EffectType = "special"
)

// ConditionType classifies a battle end condition.
type ConditionType string

const (
	ConditionVictory ConditionType = "victory"
	ConditionDefeat  ConditionType = "defeat"
	ConditionSpecial ConditionType = "special"
)

// ConditionKind is what the condition actually checks.
type ConditionKind string

const (
	KindEliminateTeam ConditionKind = "eliminate_team"
	KindTurnLimit     ConditionKind = "turn_limit"
	KindSurviveTurns  ConditionKind = "survive_turns"
)

// CheckTiming is when during the turn cycle a condition is evaluated.
type CheckTiming string

const (
	CheckStartTurn  CheckTiming = "start_turn"
	CheckEndTurn    CheckTiming = "end_turn"
	CheckOnAction   CheckTiming = "on_action"
	CheckContinuous CheckTiming = "continuous"
)

// LogType classifies combat log entries for UI replay.
type LogType string

const (
	LogAction        LogType = "action"
	LogDamage        LogType = "damage"
	LogHealing       LogType = "healing"
	LogStatusApplied LogType = "status_applied"
	LogStatusExpired LogType = "status_expired"
	LogStatusTick    LogType = "status_tick"
	LogInfo          LogType = "info"
	LogError         LogType = "error"
)

// Battle result reason strings surfaced on completion.
const (
	ReasonTimeout    = "Timeout"
	ReasonEliminated = "Eliminated"
	ReasonAbandoned  = "Abandoned"
	ReasonNoActors   = "NoActors"
	ReasonSurvived   = "Survived"
)

// WinnerDraw is used when neither roster wins (turn limit, mutual defeat).
const WinnerDraw = "draw"
