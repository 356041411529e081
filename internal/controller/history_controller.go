package controller

import (
	"errors"

	"study_diagnostic_backend/internal/service"
	"study_diagnostic_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	Diagnostic *service.DiagnosticService
}

func NewHistoryController(diagnostic *service.DiagnosticService) *HistoryController {
	return &HistoryController{Diagnostic: diagnostic}
}

// List godoc
// @Summary List the user's diagnostic history, newest first
// @Tags history
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.HistoryEntry}
// @Router /api/diagnostics/history [get]
func (c *HistoryController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.Diagnostic.History(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// Get godoc
// @Summary Get a single stored attempt
// @Tags history
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "attempt id"
// @Success 200 {object} util.Response{data=model.DiagnosticAttempt}
// @Failure 404 {object} util.Response
// @Router /api/diagnostics/history/{id} [get]
func (c *HistoryController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.Diagnostic.GetAttempt(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, attempt)
}

// Delete godoc
// @Summary Delete one attempt from the history
// @Tags history
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "attempt id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/diagnostics/history/{id} [delete]
func (c *HistoryController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.Diagnostic.DeleteAttempt(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// Clear godoc
// @Summary Delete the user's entire history
// @Tags history
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/diagnostics/history [delete]
func (c *HistoryController) Clear(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Diagnostic.ClearHistory(ctx.Request.Context(), claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// Compare godoc
// @Summary Compare the two most recent attempts
// @Description Returns per-domain score deltas against the previous attempt.
// @Description Data is null when fewer than two attempts exist.
// @Tags history
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Comparison}
// @Router /api/diagnostics/comparison [get]
func (c *HistoryController) Compare(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	comparison, err := c.Diagnostic.Compare(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNotEnoughHistory) {
			util.Success(ctx, nil)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, comparison)
}

// ImportRequest wraps entries produced by a previous export.
type ImportRequest struct {
	Entries []service.ImportedEntry `json:"entries" binding:"required"`
}

// Import godoc
// @Summary Merge exported history entries into the account
// @Description Entries whose ids already exist are skipped.
// @Tags history
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ImportRequest true "exported entries"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/diagnostics/history/import [post]
func (c *HistoryController) Import(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	imported, err := c.Diagnostic.ImportHistory(ctx.Request.Context(), claims.UserID, req.Entries)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"imported": imported})
}
