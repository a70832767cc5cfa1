package api

import (
	"time"

	"github.com/soltgard/battleforge/internal/config"
	"github.com/soltgard/battleforge/internal/engine"
	"github.com/soltgard/battleforge/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo          storage.Repository
	cfg           *config.LoadedConfig
	eng           *engine.Engine
	actionTimeout time.Duration
}

// NewBattleHandler creates a new BattleHandler wired to the repository, the
// loaded configuration tables and the simulation engine.
func NewBattleHandler(repo storage.Repository, cfg *config.LoadedConfig, eng *engine.Engine) *BattleHandler {
	return &BattleHandler{repo: repo, cfg: cfg, eng: eng, actionTimeout: cfg.ActionTimeout}
}
