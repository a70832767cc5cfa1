package api

import (
	"net/http"
	"strconv"

	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/game"
	"github.com/soltgard/battleforge/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateBattleRequest is the inbound payload for starting a battle: two
// rosters of character snapshots plus optional type and environment.
type CreateBattleRequest struct {
	Type          string                   `json:"type"`
	EnvironmentID string                   `json:"environment_id"`
	PlayerRoster  []game.CharacterSnapshot `json:"player_roster"`
	EnemyRoster   []game.CharacterSnapshot `json:"enemy_roster"`
}

// CreateBattle assembles and persists a new battle from the request
// rosters and returns it ready for its first action.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	b, err := service.StartBattle(h.repo, h.cfg, h.eng, service.StartBattleRequest{
		Type:          game.BattleType(req.Type),
		EnvironmentID: req.EnvironmentID,
		PlayerRoster:  req.PlayerRoster,
		EnemyRoster:   req.EnemyRoster,
	})
	if err != nil {
		switch err {
		case service.ErrEmptyRoster:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrRosterRequired})
		case service.ErrNoKnownActions:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		}
		return
	}

	out, err := MarshalIntoSnakeTimestamps(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ListBattles returns battles still in a non-terminal status.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	limit := 50
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	battles, err := h.repo.ListActiveBattles(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattle})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(battles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}
