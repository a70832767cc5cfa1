package api

import (
	"errors"
	"net/http"

	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/engine"
	"github.com/soltgard/battleforge/internal/service"

	"github.com/gin-gonic/gin"
)

// ActionRequest is one submitted turn: the acting participant, the chosen
// action and optional explicit targets.
type ActionRequest struct {
	ActorID   string   `json:"actor_id"`
	ActionID  string   `json:"action_id"`
	TargetIDs []string `json:"target_ids"`
}

// SubmitAction resolves one turn for a human-controlled participant.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	id := parseBattleID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ActorID == "" || req.ActionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	b, entries, err := service.SubmitAction(h.repo, h.eng, id, req.ActorID, req.ActionID, req.TargetIDs, h.actionTimeout)
	if err != nil {
		respondActionError(c, err)
		return
	}

	out, err := MarshalIntoSnakeTimestamps(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyBattle: out, constants.JSONKeyLog: entries})
}

// AdvanceAITurn plays the current AI participant's turn. Clients poll this
// after each of their own actions until the turn returns to them.
func (h *BattleHandler) AdvanceAITurn(c *gin.Context) {
	id := parseBattleID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}

	b, entries, err := service.AdvanceAITurn(h.repo, h.eng, id, h.actionTimeout)
	if err != nil {
		respondActionError(c, err)
		return
	}

	out, err := MarshalIntoSnakeTimestamps(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyBattle: out, constants.JSONKeyLog: entries})
}

// respondActionError maps service and engine errors onto HTTP statuses:
// missing resources are 404, rule violations are 409, bad references are
// 400 and anything unexpected is 500.
func respondActionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrBattleNotActive), errors.Is(err, engine.ErrBattleNotActive):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotActive})
	case errors.Is(err, engine.ErrNotYourTurn):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
	case errors.Is(err, service.ErrNotHumanControlled),
		errors.Is(err, service.ErrNotAIControlled),
		errors.Is(err, engine.ErrActorDefeated),
		errors.Is(err, engine.ErrActionOnCooldown),
		errors.Is(err, engine.ErrActionExhausted),
		errors.Is(err, engine.ErrInsufficientResources),
		errors.Is(err, engine.ErrNoValidTargets):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
	case errors.Is(err, engine.ErrActorUnknown), errors.Is(err, engine.ErrUnknownAction):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
	case errors.Is(err, engine.ErrInvariant):
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrBattleNotCompletable})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrActionRejected})
	}
}
