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

type OrganizerJudgingService interface {
	CreateJudge(ctx context.Context, judge domain.User, password string) (domain.User, error)
	ListJudges(ctx context.Context) ([]domain.User, error)
	AssignJudge(ctx context.Context, organizerID, judgeID, teamID uint) (domain.JudgeAssignment, []string, error)
}

type OrganizerHackathonService interface {
	ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Hackathon, error)
	AddPrize(ctx context.Context, organizerID uint, prize domain.Prize) (domain.Prize, error)
	GetPrizes(ctx context.Context, hackathonID uint) ([]domain.Prize, error)
	DeclareWinner(ctx context.Context, organizerID, prizeID, teamID uint) (domain.Winner, []string, error)
	GetStats(ctx context.Context, organizerID, hackathonID uint) (domain.HackathonStats, error)
}

type OrganizerHandler struct {
	judgingSvc   OrganizerJudgingService
	hackathonSvc OrganizerHackathonService
}

func NewOrganizerHandler(judgingSvc OrganizerJudgingService, hackathonSvc OrganizerHackathonService) *OrganizerHandler {
	return &OrganizerHandler{
		judgingSvc:   judgingSvc,
		hackathonSvc: hackathonSvc,
	}
}

// HandleCreateJudge godoc
// @Summary      Register a judge account
// @Tags         organizer
// @Produce      json
// @Param        request   body      request.CreateJudgeRequest true "request body"
// @Success      201      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /organizer/judges [post]
func (h *OrganizerHandler) HandleCreateJudge(ctx *gin.Context) {
	var req request.CreateJudgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	judge, err := h.judgingSvc.CreateJudge(ctx.Request.Context(), domain.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrUserEmailExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateJudge -> h.judgingSvc.CreateJudge -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, judge)
}

// HandleListJudges godoc
// @Summary      List judge accounts
// @Tags         organizer
// @Produce      json
// @Success      200      {object}   []domain.User
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /organizer/judges [get]
func (h *OrganizerHandler) HandleListJudges(ctx *gin.Context) {
	judges, err := h.judgingSvc.ListJudges(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListJudges -> h.judgingSvc.ListJudges -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, judges)
}

// HandleAssignJudge godoc
// @Summary      Assign a judge to a team
// @Tags         organizer
// @Produce      json
// @Param        hackathonID   path   int  true  "hackathon ID"
// @Param        teamID        path   int  true  "team ID"
// @Param        request   body      request.AssignJudgeRequest true "request body"
// @Success      201      {object}   response.JudgeAssignedResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /organizer/hackathons/{hackathonID}/teams/{teamID}/judges [post]
func (h *OrganizerHandler) HandleAssignJudge(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	teamID, err := parseIDParam(ctx, "teamID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AssignJudgeRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	assignment, warnings, err := h.judgingSvc.AssignJudge(ctx.Request.Context(), userID, req.JudgeID, teamID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrNotAJudge):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNotAJudge))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotOrganizer))
		case errors.Is(err, service.ErrJudgeAlreadyAssigned):
			response.RenderErr(ctx, response.ErrConflict(service.ErrJudgeAlreadyAssigned))
		default:
			err = fmt.Errorf("v1.HandleAssignJudge -> h.judgingSvc.AssignJudge -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.JudgeAssignedResponse{
		Assignment: assignment,
		Warnings:   warnings,
	})
}

// HandleListMyHackathons godoc
// @Summary      List hackathons run by the caller
// @Tags         organizer
// @Produce      json
// @Success      200      {object}   []domain.Hackathon
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /organizer/hackathons [get]
func (h *OrganizerHandler) HandleListMyHackathons(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	hackathons, err := h.hackathonSvc.ListByOrganizer(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyHackathons -> h.hackathonSvc.ListByOrganizer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, hackathons)
}

// HandleAddPrize godoc
// @Summary      Add a prize to a hackathon
// @Tags         organizer
// @Produce      json
// @Param        hackathonID   path   int  true  "hackathon ID"
// @Param        request   body      request.AddPrizeRequest true "request body"
// @Success      201      {object}   domain.Prize
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /organizer/hackathons/{hackathonID}/prizes [post]
func (h *OrganizerHandler) HandleAddPrize(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	hackathonID, err := parseIDParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AddPrizeRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	prize, err := h.hackathonSvc.AddPrize(ctx.Request.Context(), userID, domain.Prize{
		HackathonID: hackathonID,
		PrizeName:   req.PrizeName,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHackathonNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrHackathonNotFound))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotOrganizer))
		default:
			err = fmt.Errorf("v1.HandleAddPrize -> h.hackathonSvc.AddPrize -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, prize)
}

// HandleGetPrizes godoc
// @Summary      List prizes of a hackathon with any declared winners
// @Tags         organizer
// @Produce      json
// @Param        hackathonID   path   int  true  "hackathon ID"
// @Success      200      {object}   []domain.Prize
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /organizer/hackathons/{hackathonID}/prizes [get]
func (h *OrganizerHandler) HandleGetPrizes(ctx *gin.Context) {
	hackathonID, err := parseIDParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	prizes, err := h.hackathonSvc.GetPrizes(ctx.Request.Context(), hackathonID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPrizes -> h.hackathonSvc.GetPrizes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, prizes)
}

// HandleDeclareWinner godoc
// @Summary      Award a prize to a team
// @Tags         organizer
// @Produce      json
// @Param        hackathonID   path   int  true  "hackathon ID"
// @Param        request   body      request.DeclareWinnerRequest true "request body"
// @Success      201      {object}   response.WinnerDeclaredResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /organizer/hackathons/{hackathonID}/winners [post]
func (h *OrganizerHandler) HandleDeclareWinner(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	var req request.DeclareWinnerRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	winner, warnings, err := h.hackathonSvc.DeclareWinner(ctx.Request.Context(), userID, req.PrizeID, req.TeamID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPrizeNotFound),
			errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotOrganizer))
		case errors.Is(err, service.ErrTeamNotInHackathon):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTeamNotInHackathon))
		case errors.Is(err, service.ErrPrizeAlreadyAwarded):
			response.RenderErr(ctx, response.ErrConflict(service.ErrPrizeAlreadyAwarded))
		default:
			err = fmt.Errorf("v1.HandleDeclareWinner -> h.hackathonSvc.DeclareWinner -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.WinnerDeclaredResponse{
		Winner:   winner,
		Warnings: warnings,
	})
}

// HandleGetStats godoc
// @Summary      Get aggregate counts for a hackathon
// @Tags         organizer
// @Produce      json
// @Param        hackathonID   path   int  true  "hackathon ID"
// @Success      200      {object}   domain.HackathonStats
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /organizer/hackathons/{hackathonID}/stats [get]
func (h *OrganizerHandler) HandleGetStats(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	hackathonID, err := parseIDParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	stats, err := h.hackathonSvc.GetStats(ctx.Request.Context(), userID, hackathonID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHackathonNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrHackathonNotFound))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotOrganizer))
		default:
			err = fmt.Errorf("v1.HandleGetStats -> h.hackathonSvc.GetStats -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, stats)
}
