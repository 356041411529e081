package controller

import (
	"errors"

	"study_diagnostic_backend/internal/service"
	"study_diagnostic_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	Diagnostic *service.DiagnosticService
	Export     *service.ExportService
}

func NewExportController(diagnostic *service.DiagnosticService, export *service.ExportService) *ExportController {
	return &ExportController{Diagnostic: diagnostic, Export: export}
}

// ExportAttempt godoc
// @Summary Export an attempt as a history-compatible JSON entry
// @Tags export
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "attempt id"
// @Success 200 {object} util.Response{data=service.ExportEntry}
// @Failure 404 {object} util.Response
// @Router /api/diagnostics/{id}/export [get]
func (c *ExportController) ExportAttempt(ctx *gin.Context) {
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

	entry, err := c.Export.BuildExportEntry(attempt)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entry)
}

// CoachPrompt godoc
// @Summary Generate a learning-coach prompt for an attempt
// @Description Renders the stored result into a prompt suitable for pasting
// @Description into an external LLM assistant.
// @Tags export
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "attempt id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/diagnostics/{id}/prompt [get]
func (c *ExportController) CoachPrompt(ctx *gin.Context) {
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

	prompt, err := c.Export.GenerateCoachPrompt(attempt)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"prompt": prompt})
}

// Archive godoc
// @Summary Archive an attempt to the configured report storage
// @Tags export
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "attempt id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/diagnostics/{id}/archive [post]
func (c *ExportController) Archive(ctx *gin.Context) {
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

	url, err := c.Export.ArchiveReport(ctx.Request.Context(), attempt)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
