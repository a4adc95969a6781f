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

type HackathonService interface {
	CreateHackathon(ctx context.Context, hackathon domain.Hackathon) (domain.Hackathon, error)
	UpdateHackathon(ctx context.Context, organizerID uint, hackathon domain.Hackathon) (domain.Hackathon, error)
	GetHackathon(ctx context.Context, id uint) (domain.Hackathon, error)
	ListOpenHackathons(ctx context.Context) ([]domain.Hackathon, error)
	AddTopics(ctx context.Context, organizerID, hackathonID uint, titles []string) ([]domain.Topic, error)
	GetTopics(ctx context.Context, hackathonID uint) ([]domain.Topic, error)
}

type HackathonTeamService interface {
	Enroll(ctx context.Context, leaderID uint, team domain.Team) (domain.Team, error)
	IsEnrolled(ctx context.Context, userID, hackathonID uint) (bool, error)
	GetTeamsByLeader(ctx context.Context, leaderID uint) ([]domain.Team, error)
	GetTeamsByHackathon(ctx context.Context, hackathonID uint) ([]domain.Team, error)
}

type HackathonHandler struct {
	svc     HackathonService
	teamSvc HackathonTeamService
}

func NewHackathonHandler(svc HackathonService, teamSvc HackathonTeamService) *HackathonHandler {
	return &HackathonHandler{
		svc:     svc,
		teamSvc: teamSvc,
	}
}

// HandleListHackathons godoc
// @Summary      List hackathons open for registration
// @Tags         hackathons
// @Produce      json
// @Success      200      {object}   []domain.Hackathon
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /hackathons [get]
func (h *HackathonHandler) HandleListHackathons(ctx *gin.Context) {
	hackathons, err := h.svc.ListOpenHackathons(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListHackathons -> h.svc.ListOpenHackathons -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, hackathons)
}

// HandleCreateHackathon godoc
// @Summary      Create a hackathon
// @Tags         hackathons
// @Produce      json
// @Param        request   body      request.CreateHackathonRequest true "request body"
// @Success      201      {object}   domain.Hackathon
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /hackathons [post]
func (h *HackathonHandler) HandleCreateHackathon(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	var req request.CreateHackathonRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	hackathon, err := h.svc.CreateHackathon(ctx.Request.Context(), domain.Hackathon{
		OrganizerID:           userID,
		Title:                 req.Title,
		Description:           req.Description,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationEndDate:   req.RegistrationEndDate,
		MaxTeamSize:           req.MaxTeamSize,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateOrder) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateHackathon -> h.svc.CreateHackathon -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, hackathon)
}

// HandleUpdateHackathon godoc
// @Summary      Update a hackathon
// @Tags         hackathons
// @Produce      json
// @Param        hackathonID   path   int  true  "hackathon ID"
// @Param        request   body      request.UpdateHackathonRequest true "request body"
// @Success      200      {object}   domain.Hackathon
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /hackathons/{hackathonID} [put]
func (h *HackathonHandler) HandleUpdateHackathon(ctx *gin.Context) {
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

	var req request.UpdateHackathonRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	hackathon, err := h.svc.UpdateHackathon(ctx.Request.Context(), userID, domain.Hackathon{
		ID:                    hackathonID,
		Title:                 req.Title,
		Description:           req.Description,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationEndDate:   req.RegistrationEndDate,
		MaxTeamSize:           req.MaxTeamSize,
	})
	if err != nil {
		h.renderHackathonErr(ctx, "HandleUpdateHackathon", err)

		return
	}

	ctx.JSON(http.StatusOK, hackathon)
}

// HandleGetHackathon godoc
// @Summary      Get a hackathon with the caller's participation state
// @Tags         hackathons
// @Produce      json
// @Param        hackathonID   path   int  true  "hackathon ID"
// @Success      200      {object}   response.HackathonDetailsResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /hackathons/{hackathonID} [get]
func (h *HackathonHandler) HandleGetHackathon(ctx *gin.Context) {
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

	hackathon, err := h.svc.GetHackathon(ctx.Request.Context(), hackathonID)
	if err != nil {
		h.renderHackathonErr(ctx, "HandleGetHackathon", err)

		return
	}

	enrolled, err := h.teamSvc.IsEnrolled(ctx.Request.Context(), userID, hackathonID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetHackathon -> h.teamSvc.IsEnrolled -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	resp := response.HackathonDetailsResponse{
		Hackathon: hackathon,
		Enrolled:  enrolled,
	}

	if enrolled {
		teams, err := h.teamSvc.GetTeamsByLeader(ctx.Request.Context(), userID)
		if err != nil {
			err = fmt.Errorf("v1.HandleGetHackathon -> h.teamSvc.GetTeamsByLeader -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))

			return
		}

		for _, team := range teams {
			if team.HackathonID == hackathonID {
				teamID := team.ID
				resp.TeamID = &teamID

				break
			}
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleEnroll godoc
// @Summary      Enroll a team in a hackathon
// @Tags         hackathons
// @Produce      json
// @Param        hackathonID   path   int  true  "hackathon ID"
// @Param        request   body      request.EnrollTeamRequest true "request body"
// @Success      201      {object}   domain.Team
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /hackathons/{hackathonID}/enroll [post]
func (h *HackathonHandler) HandleEnroll(ctx *gin.Context) {
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

	var req request.EnrollTeamRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req.HackathonID = hackathonID
	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	team, err := h.teamSvc.Enroll(ctx.Request.Context(), userID, domain.Team{
		HackathonID: hackathonID,
		TeamName:    req.TeamName,
		Description: req.Description,
		TeamSize:    req.TeamSize,
		TopicID:     req.TopicID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHackathonNotFound),
			errors.Is(err, service.ErrTopicNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrRegistrationClosed),
			errors.Is(err, service.ErrTeamSizeExceeded):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleEnroll -> h.teamSvc.Enroll -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// HandleAddTopics godoc
// @Summary      Add topics to a hackathon
// @Tags         hackathons
// @Produce      json
// @Param        hackathonID   path   int  true  "hackathon ID"
// @Param        request   body      request.AddTopicsRequest true "request body"
// @Success      201      {object}   []domain.Topic
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /hackathons/{hackathonID}/topics [post]
func (h *HackathonHandler) HandleAddTopics(ctx *gin.Context) {
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

	var req request.AddTopicsRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	topics, err := h.svc.AddTopics(ctx.Request.Context(), userID, hackathonID, req.Topics)
	if err != nil {
		h.renderHackathonErr(ctx, "HandleAddTopics", err)

		return
	}

	ctx.JSON(http.StatusCreated, topics)
}

// HandleGetTopics godoc
// @Summary      List topics of a hackathon
// @Tags         hackathons
// @Produce      json
// @Param        hackathonID   path   int  true  "hackathon ID"
// @Success      200      {object}   []domain.Topic
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /hackathons/{hackathonID}/topics [get]
func (h *HackathonHandler) HandleGetTopics(ctx *gin.Context) {
	hackathonID, err := parseIDParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	topics, err := h.svc.GetTopics(ctx.Request.Context(), hackathonID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTopics -> h.svc.GetTopics -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, topics)
}

// HandleGetHackathonTeams godoc
// @Summary      List teams enrolled in a hackathon
// @Tags         hackathons
// @Produce      json
// @Param        hackathonID   path   int  true  "hackathon ID"
// @Success      200      {object}   []domain.Team
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /hackathons/{hackathonID}/teams [get]
func (h *HackathonHandler) HandleGetHackathonTeams(ctx *gin.Context) {
	hackathonID, err := parseIDParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	teams, err := h.teamSvc.GetTeamsByHackathon(ctx.Request.Context(), hackathonID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetHackathonTeams -> h.teamSvc.GetTeamsByHackathon -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, teams)
}

func (h *HackathonHandler) renderHackathonErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrHackathonNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrHackathonNotFound))
	case errors.Is(err, service.ErrNotOrganizer):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotOrganizer))
	case errors.Is(err, service.ErrInvalidDateOrder):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidDateOrder))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
