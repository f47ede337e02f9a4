package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/civiclab/program-api/docs"
	v1 "github.com/civiclab/program-api/internal/api/handler/v1"
	"github.com/civiclab/program-api/internal/api/middleware"
	"github.com/civiclab/program-api/internal/config"
	"github.com/civiclab/program-api/internal/pkg/ratelimit"
	"github.com/civiclab/program-api/internal/repository"
	"github.com/civiclab/program-api/internal/repository/dao"
	"github.com/civiclab/program-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	authz *service.AuthorizationService
	audit service.AuditLogger
	uSvc  *service.UserService
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	programRepo := repository.NewProgramRepository(dao.NewProgramDAO(db))

	s.authz = service.NewAuthorizationService(programRepo, userRepo, conf.API.EnableDevProgramOverride)
	s.audit = service.NewZapAuditLogger()
	s.uSvc = service.NewUserService(userRepo)

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(userRepo)
	userHandler := s.initUserHandler()
	programHandler := s.initProgramHandler(programRepo)
	programYearHandler := s.initProgramYearHandler(db, programRepo)
	groupingHandler := s.initGroupingHandler(db, programRepo)
	partyHandler := s.initPartyHandler(db, programRepo)
	positionHandler := s.initPositionHandler(db, programRepo)
	electionHandler := s.initElectionHandler(db)
	peopleHandler := s.initPeopleHandler(db)
	s.MountHandlers(authHandler, userHandler, programHandler, programYearHandler,
		groupingHandler, partyHandler, positionHandler, electionHandler, peopleHandler)

	return s
}

func (s *Server) initAuthHandler(userRepo *repository.UserRepository) *v1.AuthHandler {
	svc := service.NewAuthService(userRepo)
	limiter := ratelimit.NewLoginLimiter(
		s.Config.API.LoginMaxAttempts,
		time.Duration(s.Config.API.LoginWindowMins)*time.Minute,
	)
	handler := v1.NewAuthHandler(s.Config.API, svc, limiter)

	return handler
}

func (s *Server) initUserHandler() *v1.UserHandler {
	handler := v1.NewUserHandler(s.uSvc, s.authz)

	return handler
}

func (s *Server) initProgramHandler(programRepo *repository.ProgramRepository) *v1.ProgramHandler {
	svc := service.NewProgramService(programRepo, s.authz, s.audit)
	handler := v1.NewProgramHandler(svc, s.uSvc)

	return handler
}

func (s *Server) initProgramYearHandler(db *gorm.DB, programRepo *repository.ProgramRepository) *v1.ProgramYearHandler {
	repo := repository.NewProgramYearRepository(dao.NewProgramYearDAO(db))
	svc := service.NewProgramYearService(repo, programRepo, s.authz, s.audit)
	handler := v1.NewProgramYearHandler(svc, s.uSvc)

	return handler
}

func (s *Server) initGroupingHandler(db *gorm.DB, programRepo *repository.ProgramRepository) *v1.GroupingHandler {
	repo := repository.NewGroupingRepository(dao.NewGroupingDAO(db))
	yearRepo := repository.NewProgramYearRepository(dao.NewProgramYearDAO(db))
	svc := service.NewGroupingService(repo, programRepo, yearRepo, s.authz, s.audit)
	handler := v1.NewGroupingHandler(svc, s.uSvc)

	return handler
}

func (s *Server) initPartyHandler(db *gorm.DB, programRepo *repository.ProgramRepository) *v1.PartyHandler {
	repo := repository.NewPartyRepository(dao.NewPartyDAO(db))
	yearRepo := repository.NewProgramYearRepository(dao.NewProgramYearDAO(db))
	svc := service.NewPartyService(repo, programRepo, yearRepo, s.authz, s.audit)
	handler := v1.NewPartyHandler(svc, s.uSvc)

	return handler
}

func (s *Server) initPositionHandler(db *gorm.DB, programRepo *repository.ProgramRepository) *v1.PositionHandler {
	repo := repository.NewPositionRepository(dao.NewPositionDAO(db))
	svc := service.NewPositionService(repo, programRepo, s.authz, s.audit)
	handler := v1.NewPositionHandler(svc, s.uSvc)

	return handler
}

func (s *Server) initElectionHandler(db *gorm.DB) *v1.ElectionHandler {
	repo := repository.NewElectionRepository(dao.NewElectionDAO(db))
	yearRepo := repository.NewProgramYearRepository(dao.NewProgramYearDAO(db))
	svc := service.NewElectionService(repo, yearRepo, s.authz, s.audit)
	handler := v1.NewElectionHandler(svc, s.uSvc)

	return handler
}

func (s *Server) initPeopleHandler(db *gorm.DB) *v1.PeopleHandler {
	repo := repository.NewPeopleRepository(dao.NewPeopleDAO(db))
	yearRepo := repository.NewProgramYearRepository(dao.NewProgramYearDAO(db))
	svc := service.NewPeopleService(repo, yearRepo, s.authz, s.audit)
	handler := v1.NewPeopleHandler(svc, s.uSvc)

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
	programHandler *v1.ProgramHandler,
	programYearHandler *v1.ProgramYearHandler,
	groupingHandler *v1.GroupingHandler,
	partyHandler *v1.PartyHandler,
	positionHandler *v1.PositionHandler,
	electionHandler *v1.ElectionHandler,
	peopleHandler *v1.PeopleHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)
		authed.GET("/users/me/programs", userHandler.HandleGetMyPrograms)

		authed.POST("/programs", programHandler.HandleCreateProgram)
		authed.GET("/programs/:programID", programHandler.HandleGetProgram)
		authed.PATCH("/programs/:programID", programHandler.HandleUpdateProgram)
		authed.DELETE("/programs/:programID", programHandler.HandleRetireProgram)
		authed.POST("/programs/:programID/roles", programHandler.HandleCreateRole)
		authed.GET("/programs/:programID/roles", programHandler.HandleListRoles)
		authed.POST("/programs/:programID/assignments", programHandler.HandleAssignUser)
		authed.GET("/programs/:programID/permissions", userHandler.HandleGetMyPermissions)

		authed.POST("/programs/:programID/years", programYearHandler.HandleCreateProgramYear)
		authed.GET("/programs/:programID/years", programYearHandler.HandleListProgramYears)
		authed.GET("/program-years/:yearID", programYearHandler.HandleGetProgramYear)
		authed.PATCH("/program-years/:yearID", programYearHandler.HandleUpdateProgramYear)
		authed.DELETE("/program-years/:yearID", programYearHandler.HandleArchiveProgramYear)

		authed.POST("/programs/:programID/grouping-types", groupingHandler.HandleCreateGroupingType)
		authed.GET("/programs/:programID/grouping-types", groupingHandler.HandleListGroupingTypes)
		authed.DELETE("/grouping-types/:typeID", groupingHandler.HandleRetireGroupingType)
		authed.POST("/programs/:programID/groupings", groupingHandler.HandleCreateGrouping)
		authed.GET("/programs/:programID/groupings", groupingHandler.HandleListGroupings)
		authed.DELETE("/groupings/:groupingID", groupingHandler.HandleRetireGrouping)
		authed.PUT("/program-years/:yearID/groupings", groupingHandler.HandleSetActiveGroupings)

		authed.POST("/programs/:programID/parties", partyHandler.HandleCreateParty)
		authed.GET("/programs/:programID/parties", partyHandler.HandleListParties)
		authed.PATCH("/parties/:partyID", partyHandler.HandleUpdateParty)
		authed.DELETE("/parties/:partyID", partyHandler.HandleRetireParty)
		authed.PUT("/program-years/:yearID/parties", partyHandler.HandleSetActiveParties)

		authed.POST("/programs/:programID/positions", positionHandler.HandleCreatePosition)
		authed.GET("/programs/:programID/positions", positionHandler.HandleListPositions)
		authed.GET("/positions/:positionID", positionHandler.HandleGetPosition)
		authed.PATCH("/positions/:positionID", positionHandler.HandleUpdatePosition)
		authed.DELETE("/positions/:positionID", positionHandler.HandleRetirePosition)
		authed.POST("/positions/:positionID/activations", positionHandler.HandleActivatePosition)

		authed.POST("/program-years/:yearID/elections", electionHandler.HandleCreateElection)
		authed.GET("/program-years/:yearID/elections", electionHandler.HandleListElections)
		authed.GET("/elections/:electionID", electionHandler.HandleGetElection)
		authed.PATCH("/elections/:electionID", electionHandler.HandleUpdateElection)
		authed.DELETE("/elections/:electionID", electionHandler.HandleArchiveElection)
		authed.POST("/elections/:electionID/votes", electionHandler.HandleCastVote)
		authed.GET("/elections/:electionID/results", electionHandler.HandleGetResults)

		authed.POST("/program-years/:yearID/delegates", peopleHandler.HandleCreateDelegate)
		authed.GET("/program-years/:yearID/delegates", peopleHandler.HandleListDelegates)
		authed.PATCH("/delegates/:delegateID", peopleHandler.HandleUpdateDelegate)
		authed.POST("/program-years/:yearID/staff", peopleHandler.HandleCreateStaff)
		authed.GET("/program-years/:yearID/staff", peopleHandler.HandleListStaff)
		authed.PATCH("/staff/:staffID", peopleHandler.HandleUpdateStaff)
		authed.POST("/program-years/:yearID/parents", peopleHandler.HandleCreateParent)
		authed.GET("/program-years/:yearID/parents", peopleHandler.HandleListParents)
		authed.PATCH("/parents/:parentID", peopleHandler.HandleUpdateParent)
		authed.POST("/delegate-parent-links", peopleHandler.HandleLinkDelegateParent)
		authed.GET("/program-years/:yearID/delegate-parent-links", peopleHandler.HandleListLinks)
		authed.PATCH("/delegate-parent-links/:linkID", peopleHandler.HandleReviewLink)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Civic Program API"
	docs.SwaggerInfo.Description = "Multi-tenant backend for civic education programs."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
