package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "immigration-crm/api/swagger" // swagger docs
	"immigration-crm/internal/database"
	"immigration-crm/internal/handler"
	"immigration-crm/internal/jobs"
	"immigration-crm/internal/repository"
	"immigration-crm/internal/service"
	"immigration-crm/internal/websocket"
)

// @title           Immigration CRM API
// @version         1.0
// @description     Case management API for an immigration services firm: clients, cases, tasks, documents and interactions.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "immigration_crm"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	if err := database.SeedDefaultAdmin(db); err != nil {
		log.Fatalf("Failed to seed default admin user: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	caseNoteRepo := repository.NewCaseNoteRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	statisticsRepo := repository.NewStatisticsRepository(db)

	userService := service.NewUserService(userRepo)
	clientService := service.NewClientService(clientRepo, caseRepo, interactionRepo, txManager, wsHub)
	caseService := service.NewCaseService(caseRepo, caseNoteRepo, clientRepo, txManager, wsHub)
	taskService := service.NewTaskService(taskRepo, caseRepo, wsHub)
	documentService := service.NewDocumentService(documentRepo, caseRepo)
	interactionService := service.NewInteractionService(interactionRepo, clientRepo)
	statisticsService := service.NewStatisticsService(statisticsRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	caseHandler := handler.NewCaseHandler(caseService, documentService)
	taskHandler := handler.NewTaskHandler(taskService)
	documentHandler := handler.NewDocumentHandler(documentService)
	interactionHandler := handler.NewInteractionHandler(interactionService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)

	// Deadline reminder sweep, hourly
	reminderJob := jobs.NewReminderJob(caseRepo, taskRepo, wsHub)
	scheduler := cron.New()
	if _, err := scheduler.AddJob("@hourly", reminderJob); err != nil {
		log.Fatalf("Failed to schedule reminder job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	clientHandler.RegisterRoutes(router.Group(""))
	caseHandler.RegisterRoutes(router.Group(""))
	taskHandler.RegisterRoutes(router.Group(""))
	documentHandler.RegisterRoutes(router.Group(""))
	interactionHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
