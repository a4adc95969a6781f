package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hackarch/hackarch-api/docs"
	v1 "github.com/hackarch/hackarch-api/internal/api/handler/v1"
	"github.com/hackarch/hackarch-api/internal/api/middleware"
	"github.com/hackarch/hackarch-api/internal/config"
	"github.com/hackarch/hackarch-api/internal/notification"
	"github.com/hackarch/hackarch-api/internal/repository"
	"github.com/hackarch/hackarch-api/internal/repository/dao"
	"github.com/hackarch/hackarch-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	sender := s.initSender()
	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	hackathonHandler := s.initHackathonHandler(db, sender)
	teamHandler := s.initTeamHandler(db, sender)
	organizerHandler := s.initOrganizerHandler(db, sender)
	judgeHandler := s.initJudgeHandler(db, sender)
	s.MountHandlers(authHandler, userHandler, hackathonHandler, teamHandler, organizerHandler, judgeHandler)

	return s
}

func (s *Server) initSender() service.NotificationSender {
	if s.Config.API.Environment == "production" {
		return notification.NewSMTPSender(s.Config.SMTP, s.Config.API.FrontendURL)
	}

	return notification.NewLogSender()
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initHackathonHandler(db *gorm.DB, sender service.NotificationSender) *v1.HackathonHandler {
	hackathonRepo := repository.NewHackathonRepository(dao.NewHackathonDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewHackathonService(hackathonRepo, teamRepo, userRepo, sender)
	teamSvc := service.NewTeamService(teamRepo, userRepo, hackathonRepo, sender)
	handler := v1.NewHackathonHandler(svc, teamSvc)

	return handler
}

func (s *Server) initTeamHandler(db *gorm.DB, sender service.NotificationSender) *v1.TeamHandler {
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	hackathonRepo := repository.NewHackathonRepository(dao.NewHackathonDAO(db))
	svc := service.NewTeamService(teamRepo, userRepo, hackathonRepo, sender)
	handler := v1.NewTeamHandler(svc)

	return handler
}

func (s *Server) initOrganizerHandler(db *gorm.DB, sender service.NotificationSender) *v1.OrganizerHandler {
	judgingRepo := repository.NewJudgingRepository(dao.NewJudgingDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	hackathonRepo := repository.NewHackathonRepository(dao.NewHackathonDAO(db))
	judgingSvc := service.NewJudgingService(judgingRepo, userRepo, teamRepo, hackathonRepo, sender)
	hackathonSvc := service.NewHackathonService(hackathonRepo, teamRepo, userRepo, sender)
	handler := v1.NewOrganizerHandler(judgingSvc, hackathonSvc)

	return handler
}

func (s *Server) initJudgeHandler(db *gorm.DB, sender service.NotificationSender) *v1.JudgeHandler {
	judgingRepo := repository.NewJudgingRepository(dao.NewJudgingDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	hackathonRepo := repository.NewHackathonRepository(dao.NewHackathonDAO(db))
	svc := service.NewJudgingService(judgingRepo, userRepo, teamRepo, hackathonRepo, sender)
	handler := v1.NewJudgeHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	hackathonHandler *v1.HackathonHandler,
	teamHandler *v1.TeamHandler,
	organizerHandler *v1.OrganizerHandler,
	judgeHandler *v1.JudgeHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		public.GET("/invitations/accept/:token", teamHandler.HandleAcceptInvitation)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)
		authed.PUT("/profile", userHandler.HandleUpdateProfile)
		authed.PUT("/profile/password", userHandler.HandleChangePassword)

		authed.GET("/hackathons", hackathonHandler.HandleListHackathons)
		authed.POST("/hackathons", hackathonHandler.HandleCreateHackathon)
		authed.GET("/hackathons/:hackathonID", hackathonHandler.HandleGetHackathon)
		authed.PUT("/hackathons/:hackathonID", hackathonHandler.HandleUpdateHackathon)
		authed.POST("/hackathons/:hackathonID/enroll", hackathonHandler.HandleEnroll)
		authed.GET("/hackathons/:hackathonID/topics", hackathonHandler.HandleGetTopics)
		authed.GET("/hackathons/:hackathonID/teams", hackathonHandler.HandleGetHackathonTeams)
		authed.POST("/hackathons/:hackathonID/topics", hackathonHandler.HandleAddTopics)

		authed.GET("/teams/:teamID", teamHandler.HandleGetTeam)
		authed.GET("/teams/:teamID/members", teamHandler.HandleGetMembers)
		authed.PUT("/teams/:teamID/members", teamHandler.HandleUpdateMembers)
		authed.POST("/teams/:teamID/members/:memberID/resend", teamHandler.HandleResendInvitation)

		authed.POST("/projects", teamHandler.HandleSubmitProject)
	}

	organizer := s.Router.Group(basePath+"/organizer", middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		organizer.GET("/hackathons", organizerHandler.HandleListMyHackathons)
		organizer.POST("/judges", organizerHandler.HandleCreateJudge)
		organizer.GET("/judges", organizerHandler.HandleListJudges)
		organizer.POST("/hackathons/:hackathonID/teams/:teamID/judges", organizerHandler.HandleAssignJudge)
		organizer.POST("/hackathons/:hackathonID/prizes", organizerHandler.HandleAddPrize)
		organizer.GET("/hackathons/:hackathonID/prizes", organizerHandler.HandleGetPrizes)
		organizer.POST("/hackathons/:hackathonID/winners", organizerHandler.HandleDeclareWinner)
		organizer.GET("/hackathons/:hackathonID/stats", organizerHandler.HandleGetStats)
	}

	judge := s.Router.Group(basePath+"/judge", middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		judge.GET("/assignments", judgeHandler.HandleGetAssignments)
		judge.PUT("/assignments/:assignmentID/status", judgeHandler.HandleUpdateAssignmentStatus)
		judge.POST("/projects/:projectID/score", judgeHandler.HandleSubmitScore)
		judge.PUT("/projects/:projectID/score", judgeHandler.HandleUpdateScore)
		judge.GET("/projects/:projectID/score", judgeHandler.HandleGetScore)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Hackathon Platform API"
	docs.SwaggerInfo.Description = "REST API for hackathon enrollment, team formation and judging."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
