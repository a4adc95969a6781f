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

type TeamService interface {
	UpdateMembers(ctx context.Context, leaderID, teamID uint, descriptors []domain.MemberDescriptor) ([]domain.IssuedInvitation, []string, error)
	AcceptInvitation(ctx context.Context, token string) (domain.TeamInvitation, error)
	ResendInvitation(ctx context.Context, leaderID, teamID, userID uint) (domain.IssuedInvitation, []string, error)
	GetTeamDetails(ctx context.Context, teamID uint) (domain.TeamDetails, error)
	SubmitProject(ctx context.Context, leaderID uint, project domain.Project) (domain.Project, error)
}

type TeamHandler struct {
	svc TeamService
}

func NewTeamHandler(svc TeamService) *TeamHandler {
	return &TeamHandler{
		svc: svc,
	}
}

// HandleUpdateMembers godoc
// @Summary      Fill roster slots and send invitations
// @Tags         teams
// @Produce      json
// @Param        teamID   path   int  true  "team ID"
// @Param        request   body      request.UpdateMembersRequest true "request body"
// @Success      200      {object}   response.MembersUpdatedResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /teams/{teamID}/members [put]
func (h *TeamHandler) HandleUpdateMembers(ctx *gin.Context) {
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

	var req request.UpdateMembersRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	descriptors := make([]domain.MemberDescriptor, len(req.Members))
	for i, m := range req.Members {
		descriptors[i] = domain.MemberDescriptor{
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			Email:       m.Email,
			CollegeName: m.CollegeName,
			Gender:      m.Gender,
		}
	}

	invitations, warnings, err := h.svc.UpdateMembers(ctx.Request.Context(), userID, teamID, descriptors)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTeamNotFound))
		case errors.Is(err, service.ErrNotTeamLeader):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotTeamLeader))
		case errors.Is(err, service.ErrRosterFull):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrRosterFull))
		default:
			err = fmt.Errorf("v1.HandleUpdateMembers -> h.svc.UpdateMembers -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.MembersUpdatedResponse{
		Invitations: invitations,
		Warnings:    warnings,
	})
}

// HandleAcceptInvitation godoc
// @Summary      Redeem an invitation token
// @Tags         teams
// @Produce      json
// @Param        token   path   string  true  "invitation token"
// @Success      200      {object}   response.InvitationAcceptedResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /invitations/accept/{token} [get]
func (h *TeamHandler) HandleAcceptInvitation(ctx *gin.Context) {
	token := ctx.Param("token")
	if token == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("token is required")))

		return
	}

	invitation, err := h.svc.AcceptInvitation(ctx.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvitationInvalidOrExpired) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvitationInvalidOrExpired))

			return
		}

		err = fmt.Errorf("v1.HandleAcceptInvitation -> h.svc.AcceptInvitation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.InvitationAcceptedResponse{
		Message: "invitation accepted",
		TeamID:  invitation.TeamID,
	})
}

// HandleResendInvitation godoc
// @Summary      Issue a fresh invitation for an unverified member
// @Tags         teams
// @Produce      json
// @Param        teamID    path   int  true  "team ID"
// @Param        memberID  path   int  true  "member user ID"
// @Success      200      {object}   response.InvitationResentResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /teams/{teamID}/members/{memberID}/resend [post]
func (h *TeamHandler) HandleResendInvitation(ctx *gin.Context) {
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

	memberID, err := parseIDParam(ctx, "memberID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	invitation, warnings, err := h.svc.ResendInvitation(ctx.Request.Context(), userID, teamID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTeamNotFound))
		case errors.Is(err, service.ErrMemberNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMemberNotFound))
		case errors.Is(err, service.ErrNotTeamLeader):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotTeamLeader))
		case errors.Is(err, service.ErrMemberAlreadyVerified):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrMemberAlreadyVerified))
		default:
			err = fmt.Errorf("v1.HandleResendInvitation -> h.svc.ResendInvitation -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.InvitationResentResponse{
		Invitation: invitation,
		Warnings:   warnings,
	})
}

// HandleGetTeam godoc
// @Summary      Get a team with its roster and readiness flags
// @Tags         teams
// @Produce      json
// @Param        teamID   path   int  true  "team ID"
// @Success      200      {object}   domain.TeamDetails
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /teams/{teamID} [get]
func (h *TeamHandler) HandleGetTeam(ctx *gin.Context) {
	teamID, err := parseIDParam(ctx, "teamID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	details, err := h.svc.GetTeamDetails(ctx.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTeamNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetTeam -> h.svc.GetTeamDetails -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, details)
}

// HandleGetMembers godoc
// @Summary      List a team's members
// @Tags         teams
// @Produce      json
// @Param        teamID   path   int  true  "team ID"
// @Success      200      {object}   []domain.TeamMember
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /teams/{teamID}/members [get]
func (h *TeamHandler) HandleGetMembers(ctx *gin.Context) {
	teamID, err := parseIDParam(ctx, "teamID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	details, err := h.svc.GetTeamDetails(ctx.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTeamNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetMembers -> h.svc.GetTeamDetails -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, details.Members)
}

// HandleSubmitProject godoc
// @Summary      Submit the team's project
// @Tags         projects
// @Produce      json
// @Param        request   body      request.SubmitProjectRequest true "request body"
// @Success      201      {object}   domain.Project
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /projects [post]
func (h *TeamHandler) HandleSubmitProject(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	var req request.SubmitProjectRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	project, err := h.svc.SubmitProject(ctx.Request.Context(), userID, domain.Project{
		TeamID:      req.TeamID,
		ProjectName: req.ProjectName,
		Description: req.Description,
		GithubURL:   req.GithubURL,
		DemoURL:     req.DemoURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTeamNotFound))
		case errors.Is(err, service.ErrNotTeamLeader):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotTeamLeader))
		case errors.Is(err, service.ErrTeamNotReady):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTeamNotReady))
		case errors.Is(err, service.ErrProjectAlreadySubmitted):
			response.RenderErr(ctx, response.ErrConflict(service.ErrProjectAlreadySubmitted))
		default:
			err = fmt.Errorf("v1.HandleSubmitProject -> h.svc.SubmitProject -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, project)
}
