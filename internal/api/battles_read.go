package api

import (
	"net/http"
	"strconv"

	"github.com/soltgard/battleforge/internal/constants"

	"github.com/gin-gonic/gin"
)

// GetBattle returns a battle by ID with participants and combat log
// preloaded.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id := parseBattleID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	b, err := h.repo.GetBattleByID(id)
	if err != nil || b == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetCombatLog returns a battle's log entries in append order, for UI
// replay.
func (h *BattleHandler) GetCombatLog(c *gin.Context) {
	id := parseBattleID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	entries, err := h.repo.GetCombatLog(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLog})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyLog: entries})
}

// ListRecords returns the most recent post-battle summaries.
func (h *BattleHandler) ListRecords(c *gin.Context) {
	limit := 20
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	records, err := h.repo.ListCombatRecords(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRecords})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRecords})
		return
	}
	c.JSON(http.StatusOK, out)
}
