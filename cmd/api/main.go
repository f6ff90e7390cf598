package main

import (
	"net/http"

	_ "primefire/api/swagger" // swagger docs
	"primefire/internal/config"
	"primefire/internal/database"
	"primefire/internal/graph"
	"primefire/internal/handler"
	"primefire/internal/middleware"
	"primefire/internal/repository"
	"primefire/internal/service"
	"primefire/internal/websocket"
	"primefire/pkg/secrets"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           PrimeFire API
// @version         1.0
// @description     HR and IT operations API for employees, roles and permissions, licenses, job postings, candidate CVs, hardware assets and helpdesk tickets.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{PrettyPrint: cfg.IsLocal()})

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}
	logger.Info("connected to PostgreSQL")

	database.Migrate(db)
	if err := database.Seed(db); err != nil {
		logger.WithError(err).Fatal("database seed failed")
	}

	cipher, err := secrets.NewCipher(cfg.SecretKey)
	if err != nil {
		logger.WithError(err).Fatal("invalid SECRET_KEY")
	}

	// WebSocket hub for ticket events
	wsHub := websocket.NewHub()
	go wsHub.Run()

	graphClient := graph.NewClient(cfg, logger)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	countryRepo := repository.NewCountryRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	licenseRepo := repository.NewLicenseRepository(db)
	jobRepo := repository.NewJobRepository(db)
	curriculumRepo := repository.NewCurriculumRepository(db)
	hardwareRepo := repository.NewHardwareRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	countryService := service.NewCountryService(countryRepo)
	employeeService := service.NewEmployeeService(employeeRepo, roleRepo, countryService)
	roleService := service.NewRoleService(roleRepo)
	moduleService := service.NewModuleService(moduleRepo, txManager)
	permissionService := service.NewPermissionService(permissionRepo, roleRepo, moduleRepo, txManager)
	licenseService := service.NewLicenseService(licenseRepo, employeeRepo, cipher)
	jobService := service.NewJobService(jobRepo)
	curriculumService := service.NewCurriculumService(curriculumRepo, jobRepo, cfg.UploadDir)
	hardwareService := service.NewHardwareService(hardwareRepo, employeeRepo)
	ticketService := service.NewTicketService(ticketRepo, employeeRepo, permissionService, wsHub, cfg.UploadDir)
	syncService := service.NewSyncService(employeeRepo, countryService, graphClient, logger)

	scheduler := service.NewSyncScheduler(syncService, cfg, logger)
	scheduler.Start()

	// Initialize Handlers
	employeeHandler := handler.NewEmployeeHandler(employeeService, syncService, scheduler, permissionService)
	roleHandler := handler.NewRoleHandler(roleService, permissionService)
	moduleHandler := handler.NewModuleHandler(moduleService, permissionService)
	permissionHandler := handler.NewPermissionHandler(permissionService)
	countryHandler := handler.NewCountryHandler(countryService)
	licenseHandler := handler.NewLicenseHandler(licenseService, permissionService)
	jobHandler := handler.NewJobHandler(jobService, permissionService)
	curriculumHandler := handler.NewCurriculumHandler(curriculumService, permissionService)
	hardwareHandler := handler.NewHardwareHandler(hardwareService, permissionService)
	ticketHandler := handler.NewTicketHandler(ticketService, permissionService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any",
		gin.BasicAuth(gin.Accounts{cfg.SwaggerUsername: cfg.SwaggerPassword}),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, cfg)
	})

	// Register API Routes
	// Job reads stay public for the careers site; everything else needs a token.
	authed := router.Group("", middleware.RequireAuth(cfg, employeeRepo))
	employeeHandler.RegisterRoutes(authed)
	roleHandler.RegisterRoutes(authed)
	moduleHandler.RegisterRoutes(authed)
	permissionHandler.RegisterRoutes(authed)
	countryHandler.RegisterRoutes(authed)
	licenseHandler.RegisterRoutes(authed)
	jobHandler.RegisterRoutes(router.Group(""), authed)
	curriculumHandler.RegisterRoutes(authed)
	hardwareHandler.RegisterRoutes(authed)
	ticketHandler.RegisterRoutes(authed)

	logger.WithField("port", cfg.Port).Info("server listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("server failed")
	}
}
