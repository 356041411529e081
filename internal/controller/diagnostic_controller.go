package controller

import (
	"errors"

	"study_diagnostic_backend/internal/engine"
	"study_diagnostic_backend/internal/model"
	"study_diagnostic_backend/internal/service"
	"study_diagnostic_backend/internal/util"
	"study_diagnostic_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type DiagnosticController struct {
	Catalog    *service.CatalogService
	Diagnostic *service.DiagnosticService
}

func NewDiagnosticController(catalog *service.CatalogService, diagnostic *service.DiagnosticService) *DiagnosticController {
	return &DiagnosticController{Catalog: catalog, Diagnostic: diagnostic}
}

// GetQuestions godoc
// @Summary List the questionnaire rosters
// @Tags diagnostics
// @Produce json
// @Success 200 {object} util.Response{data=object}
// @Router /api/questions [get]
func (c *DiagnosticController) GetQuestions(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"core": c.Catalog.CoreQuestions(),
		"meta": c.Catalog.MetaQuestions(),
	})
}

// SubmitRequest carries the raw questionnaire answers keyed by question id.
type SubmitRequest struct {
	Answers model.Answers `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary Score a completed questionnaire
// @Description Runs the diagnostic pipeline and stores the attempt.
// @Tags diagnostics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitRequest true "questionnaire answers"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/diagnostics [post]
func (c *DiagnosticController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, result, err := c.Diagnostic.Submit(ctx.Request.Context(), claims.UserID, req.Answers)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidAnswer) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.DiagnosticsCompleted.Inc()

	util.Created(ctx, gin.H{
		"id":      attempt.ID,
		"takenAt": attempt.TakenAt,
		"results": result,
	})
}

// Latest godoc
// @Summary Get the most recent diagnostic result
// @Tags diagnostics
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/diagnostics/latest [get]
func (c *DiagnosticController) Latest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.Diagnostic.Latest(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNoAttempts) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, attempt)
}
