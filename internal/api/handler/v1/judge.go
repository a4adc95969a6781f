package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackarch/hackarch-api/internal/api/handler/v1/request"
	"github.com/hackarch/hackarch-api/internal/api/handler/v1/response"
	"github.com/hackarch/hackarch-api/internal/domain"
	"github.com/hackarch/hackarch-api/internal/service"
)

type JudgeService interface {
	GetAssignments(ctx context.Context, judgeID uint) ([]domain.JudgeAssignment, error)
	UpdateAssignmentStatus(ctx context.Context, judgeID, assignmentID uint, status string) (domain.JudgeAssignment, error)
	SubmitScore(ctx context.Context, judgeID, projectID uint, value int, comments string) (domain.ProjectScore, error)
	UpdateScore(ctx context.Context, judgeID, projectID uint, value int, comments string) (domain.ProjectScore, error)
	GetScore(ctx context.Context, judgeID, projectID uint) (domain.ProjectScore, error)
}

type JudgeHandler struct {
	svc JudgeService
}

func NewJudgeHandler(svc JudgeService) *JudgeHandler {
	return &JudgeHandler{
		svc: svc,
	}
}

// HandleGetAssignments godoc
// @Summary      List the caller's judging assignments
// @Tags         judge
// @Produce      json
// @Success      200      {object}   []domain.JudgeAssignment
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /judge/assignments [get]
func (h *JudgeHandler) HandleGetAssignments(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	assignments, err := h.svc.GetAssignments(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAssignments -> h.svc.GetAssignments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, assignments)
}

// HandleUpdateAssignmentStatus godoc
// @Summary      Accept or reject a pending assignment
// @Tags         judge
// @Produce      json
// @Param        assignmentID   path   int  true  "assignment ID"
// @Param        request   body      request.UpdateAssignmentStatusRequest true "request body"
// @Success      200      {object}   domain.JudgeAssignment
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /judge/assignments/{assignmentID}/status [put]
func (h *JudgeHandler) HandleUpdateAssignmentStatus(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	assignmentID, err := parseIDParam(ctx, "assignmentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateAssignmentStatusRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	assignment, err := h.svc.UpdateAssignmentStatus(ctx.Request.Context(), userID, assignmentID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAssignmentNotFound))
		case errors.Is(err, service.ErrInvalidAssignmentStatus):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidAssignmentStatus))
		case errors.Is(err, service.ErrAssignmentNotPending):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAssignmentNotPending))
		default:
			err = fmt.Errorf("v1.HandleUpdateAssignmentStatus -> h.svc.UpdateAssignmentStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, assignment)
}

// HandleSubmitScore godoc
// @Summary      Score a project
// @Tags         judge
// @Produce      json
// @Param        projectID   path   int  true  "project ID"
// @Param        request   body      request.SubmitScoreRequest true "request body"
// @Success      201      {object}   domain.ProjectScore
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /judge/projects/{projectID}/score [post]
func (h *JudgeHandler) HandleSubmitScore(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	projectID, err := parseIDParam(ctx, "projectID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SubmitScoreRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	score, err := h.svc.SubmitScore(ctx.Request.Context(), userID, projectID, req.Score, req.Comments)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrProjectNotFound))
		case errors.Is(err, service.ErrNotAssignedToTeam):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAssignedToTeam))
		case errors.Is(err, service.ErrScoreOutOfRange):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrScoreOutOfRange))
		case errors.Is(err, service.ErrProjectAlreadyScored):
			response.RenderErr(ctx, response.ErrConflict(service.ErrProjectAlreadyScored))
		default:
			err = fmt.Errorf("v1.HandleSubmitScore -> h.svc.SubmitScore -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, score)
}

// HandleUpdateScore godoc
// @Summary      Revise an existing score
// @Tags         judge
// @Produce      json
// @Param        projectID   path   int  true  "project ID"
// @Param        request   body      request.SubmitScoreRequest true "request body"
// @Success      200      {object}   domain.ProjectScore
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /judge/projects/{projectID}/score [put]
func (h *JudgeHandler) HandleUpdateScore(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	projectID, err := parseIDParam(ctx, "projectID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SubmitScoreRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	score, err := h.svc.UpdateScore(ctx.Request.Context(), userID, projectID, req.Score, req.Comments)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScoreNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrScoreNotFound))
		case errors.Is(err, service.ErrScoreOutOfRange):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrScoreOutOfRange))
		default:
			err = fmt.Errorf("v1.HandleUpdateScore -> h.svc.UpdateScore -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, score)
}

// HandleGetScore godoc
// @Summary      Get the caller's score for a project
// @Tags         judge
// @Produce      json
// @Param        projectID   path   int  true  "project ID"
// @Success      200      {object}   domain.ProjectScore
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /judge/projects/{projectID}/score [get]
func (h *JudgeHandler) HandleGetScore(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	projectID, err := parseIDParam(ctx, "projectID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	score, err := h.svc.GetScore(ctx.Request.Context(), userID, projectID)
	if err != nil {
		if errors.Is(err, service.ErrScoreNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrScoreNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetScore -> h.svc.GetScore -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, score)
}
