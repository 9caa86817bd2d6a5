package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/exposuite/exposuite/docs"
	v1 "github.com/exposuite/exposuite/internal/api/handler/v1"
	"github.com/exposuite/exposuite/internal/api/middleware"
	"github.com/exposuite/exposuite/internal/config"
	"github.com/exposuite/exposuite/internal/repository"
	"github.com/exposuite/exposuite/internal/repository/dao"
	"github.com/exposuite/exposuite/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	// drafts is shared between the selection wizard and submission so a
	// submitted draft is the same one the wizard mutated.
	drafts *repository.DraftRepository
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		drafts: repository.NewDraftRepository(),
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db)
	registrationHandler := s.initRegistrationHandler(db)
	selectionHandler := s.initSelectionHandler(db)
	invoiceHandler := s.initInvoiceHandler(db)
	s.MountHandlers(authHandler, userHandler, eventHandler, registrationHandler, selectionHandler, invoiceHandler)

	return s
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

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewEventService(eventRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewEventHandler(svc, uSvc)

	return handler
}

func (s *Server) initRegistrationHandler(db *gorm.DB) *v1.RegistrationHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	regRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db), eventRepo)
	svc := service.NewRegistrationService(regRepo, eventRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewRegistrationHandler(svc, uSvc)

	return handler
}

func (s *Server) initSelectionHandler(db *gorm.DB) *v1.SelectionHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	regRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db), eventRepo)
	invoiceRepo := repository.NewInvoiceRepository(dao.NewInvoiceDAO(db))

	availability := service.NewAvailabilityService(eventRepo)
	svc := service.NewSelectionService(regRepo, eventRepo, availability, s.drafts)

	regSvc := service.NewRegistrationService(regRepo, eventRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, regRepo, s.Config.Billing.TaxRate)
	submission := service.NewSubmissionService(regSvc, invoiceSvc, s.drafts)

	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewSelectionHandler(svc, submission, regSvc, uSvc)

	return handler
}

func (s *Server) initInvoiceHandler(db *gorm.DB) *v1.InvoiceHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	regRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db), eventRepo)
	invoiceRepo := repository.NewInvoiceRepository(dao.NewInvoiceDAO(db))
	svc := service.NewInvoiceService(invoiceRepo, regRepo, s.Config.Billing.TaxRate)
	handler := v1.NewInvoiceHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(gzip.Gzip(gzip.DefaultCompression))
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	registrationHandler *v1.RegistrationHandler,
	selectionHandler *v1.SelectionHandler,
	invoiceHandler *v1.InvoiceHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)

		authenticated.POST("/events", eventHandler.HandleCreateEvent)
		authenticated.GET("/events", eventHandler.HandleGetEvents)
		authenticated.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authenticated.POST("/events/:eventID/stands", eventHandler.HandleCreateStand)
		authenticated.GET("/events/:eventID/stands", eventHandler.HandleGetStands)
		authenticated.GET("/events/:eventID/stands/available", eventHandler.HandleGetAvailableStands)
		authenticated.POST("/events/:eventID/equipment", eventHandler.HandleCreateEquipment)
		authenticated.GET("/events/:eventID/equipment", eventHandler.HandleGetEventEquipment)
		authenticated.GET("/equipment/:equipmentID/available-quantity/:eventID", eventHandler.HandleGetAvailableQuantity)

		authenticated.POST("/events/:eventID/register", registrationHandler.HandleRegister)
		authenticated.GET("/registrations", registrationHandler.HandleGetRegistrations)
		authenticated.GET("/registrations/:registrationID", registrationHandler.HandleGetRegistration)
		authenticated.POST("/registrations/:registrationID/review", registrationHandler.HandleReview)
		authenticated.POST("/registrations/:registrationID/cancel", registrationHandler.HandleCancel)
		authenticated.POST("/registrations/:registrationID/select-stands", registrationHandler.HandleSelectStands)
		authenticated.POST("/registrations/:registrationID/select-equipment", registrationHandler.HandleSelectEquipment)

		authenticated.GET("/registrations/:registrationID/selection", selectionHandler.HandleGetSelection)
		authenticated.DELETE("/registrations/:registrationID/selection", selectionHandler.HandleDiscard)
		authenticated.POST("/registrations/:registrationID/selection/stands/:standID/toggle", selectionHandler.HandleToggleStand)
		authenticated.POST("/registrations/:registrationID/selection/equipment/:equipmentID/toggle", selectionHandler.HandleToggleEquipment)
		authenticated.POST("/registrations/:registrationID/selection/equipment/:equipmentID/quantity", selectionHandler.HandleSetQuantity)
		authenticated.POST("/registrations/:registrationID/selection/advance", selectionHandler.HandleAdvance)
		authenticated.POST("/registrations/:registrationID/selection/retreat", selectionHandler.HandleRetreat)
		authenticated.POST("/registrations/:registrationID/selection/submit", selectionHandler.HandleSubmit)

		authenticated.POST("/invoices/registration/:registrationID", invoiceHandler.HandleGenerateInvoice)
		authenticated.GET("/invoices/:invoiceID", invoiceHandler.HandleGetInvoice)
		authenticated.POST("/invoices/:invoiceID/pay", invoiceHandler.HandlePayInvoice)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "ExpoSuite API"
	docs.SwaggerInfo.Description = "Exhibition event, stand selection and registration API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
