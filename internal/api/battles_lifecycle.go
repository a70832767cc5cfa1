package api

import (
	"errors"
	"net/http"

	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/service"

	"github.com/gin-gonic/gin"
)

// AbandonBattle forfeits a battle.
func (h *BattleHandler) AbandonBattle(c *gin.Context) {
	id := parseBattleID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	b, err := service.AbandonBattle(h.repo, h.eng, id)
	if err != nil {
		respondActionError(c, err)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}

// PauseBattle suspends an active battle between turns.
func (h *BattleHandler) PauseBattle(c *gin.Context) {
	id := parseBattleID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	b, err := service.PauseBattle(h.repo, id)
	if err != nil {
		respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Battle paused.", "status": b.Status})
}

// ResumeBattle reactivates a paused battle.
func (h *BattleHandler) ResumeBattle(c *gin.Context) {
	id := parseBattleID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	b, err := service.ResumeBattle(h.repo, id, h.actionTimeout)
	if err != nil {
		if errors.Is(err, service.ErrBattleNotPaused) {
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
			return
		}
		respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Battle resumed.", "status": b.Status})
}
