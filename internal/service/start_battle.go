package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/soltgard/battleforge/internal/config"
	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/engine"
	"github.com/soltgard/battleforge/internal/game"
	"github.com/soltgard/battleforge/internal/logging"
)

// StartBattleRequest carries everything needed to assemble a new battle
// from character snapshots.
type StartBattleRequest struct {
	Type          game.BattleType
	EnvironmentID string
	PlayerRoster  []game.CharacterSnapshot
	EnemyRoster   []game.CharacterSnapshot
}

// StartBattle performs all server-side initialization for a new battle:
// participants are built from the snapshots, environmental effects applied,
// the turn order rolled and the battle persisted in active status. The
// returned battle is ready for its first SubmitAction or AdvanceAITurn.
func StartBattle(repo BattleRepo, cfg *config.LoadedConfig, eng *engine.Engine, req StartBattleRequest) (*game.Battle, error) {
	if len(req.PlayerRoster) == 0 || len(req.EnemyRoster) == 0 {
		return nil, ErrEmptyRoster
	}

	bt := cfg.BattleType(req.Type)
	env := cfg.Environment(req.EnvironmentID)
	if req.EnvironmentID != "" && env.ID != req.EnvironmentID {
		logging.Info("unknown environment; using fallback", logging.Fields{
			constants.LogFieldEnvID: req.EnvironmentID,
		})
	}

	b := &game.Battle{
		Type:          bt.Type,
		Status:        game.StatusActive,
		EnvironmentID: env.ID,
		CurrentTurn:   1,
		MaxTurns:      bt.MaxTurns,
		Conditions:    bt.Conditions,
		Rewards:       bt.Rewards,
		TieBreak:      bt.TieBreak,
		Message:       "The battle has started.",
		StartedAt:     time.Now(),
	}

	for _, snap := range req.PlayerRoster {
		p, err := buildParticipant(cfg, snap, game.TeamPlayer)
		if err != nil {
			return nil, err
		}
		b.Participants = append(b.Participants, *p)
	}
	for _, snap := range req.EnemyRoster {
		p, err := buildParticipant(cfg, snap, game.TeamEnemy)
		if err != nil {
			return nil, err
		}
		b.Participants = append(b.Participants, *p)
	}

	// Environmental effects apply to everyone before initiative is rolled,
	// so speed modifiers from the arena shape the opening order.
	for i := range b.Participants {
		for _, eff := range env.Effects {
			eng.ApplyStatusEffect(&b.Participants[i], eff)
		}
	}

	b.TurnOrder = eng.BuildTurnOrder(b)
	b.ActionDeadline = time.Now().Add(cfg.ActionTimeout)

	if err := repo.CreateBattle(b); err != nil {
		return nil, err
	}
	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldEnvID:    b.EnvironmentID,
	})
	return b, nil
}

// buildParticipant turns a character snapshot into a battle participant.
// Unknown action references are dropped with a log line so one stale id
// does not abort battle creation; a character left with no actions at all
// is an error.
func buildParticipant(cfg *config.LoadedConfig, snap game.CharacterSnapshot, team game.Team) (*game.Participant, error) {
	actions := make([]game.ActionInstance, 0, len(snap.ActionIDs))
	for _, id := range snap.ActionIDs {
		if _, ok := cfg.Actions[id]; !ok {
			logging.Info("dropping unknown action reference", logging.Fields{
				constants.LogFieldActionID: id,
			})
			continue
		}
		actions = append(actions, game.ActionInstance{ActionID: id})
	}
	if len(actions) == 0 {
		return nil, ErrNoKnownActions
	}

	row := snap.Row
	if row < 1 || row > 3 {
		row = 2
	}

	return &game.Participant{
		ParticipantID: uuid.NewString(),
		Name:          snap.Name,
		Team:          team,
		Level:         snap.Level,
		Row:           row,
		Col:           snap.Col,
		Element:       snap.Element,
		CurrentStats:  snap.Stats,
		MaxStats:      snap.Stats,
		Actions:       actions,
		AIProfileID:   snap.AIProfileID,
	}, nil
}
