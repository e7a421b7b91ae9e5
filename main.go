package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rmoraes/phone-repair-api/config"
	"github.com/rmoraes/phone-repair-api/controllers"
	"github.com/rmoraes/phone-repair-api/logger"
	"github.com/rmoraes/phone-repair-api/middleware"
	"github.com/rmoraes/phone-repair-api/models"
	"github.com/rmoraes/phone-repair-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.GoEnv)
	defer logger.Sync()

	// Connect to database
	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.DeviceModel{},
		&models.CommonIssue{},
		&models.Service{},
		&models.StockItem{},
		&models.Order{},
		&models.CustomCase{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Design image storage is optional; without a bucket the upload-design
	// endpoint still accepts externally hosted image URLs
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.Default())

	registerRoutes(router)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// registerRoutes wires all API routes under the /api prefix
func registerRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)

		deviceModels := api.Group("/models")
		{
			deviceModels.GET("", controllers.ListDeviceModels)
			deviceModels.GET("/:id", controllers.GetDeviceModel)
			deviceModels.POST("", controllers.CreateDeviceModel)
			deviceModels.PUT("/:id", controllers.UpdateDeviceModel)
			deviceModels.DELETE("/:id", controllers.DeactivateDeviceModel)
			deviceModels.POST("/:id/issues", controllers.AddDeviceModelIssue)
			deviceModels.DELETE("/:id/issues/:issueId", controllers.RemoveDeviceModelIssue)
		}

		commonIssues := api.Group("/common-issues")
		{
			commonIssues.GET("", controllers.ListCommonIssues)
			commonIssues.GET("/:id", controllers.GetCommonIssue)
			commonIssues.POST("", controllers.CreateCommonIssue)
			commonIssues.PUT("/:id", controllers.UpdateCommonIssue)
			commonIssues.DELETE("/:id", controllers.DeleteCommonIssue)
			commonIssues.GET("/device-model/:deviceModelId", controllers.ListIssuesByDeviceModel)
		}

		serviceCatalog := api.Group("/services")
		{
			serviceCatalog.GET("", controllers.ListServices)
			serviceCatalog.GET("/:id", controllers.GetService)
			serviceCatalog.POST("", controllers.CreateService)
			serviceCatalog.PUT("/:id", controllers.UpdateService)
			serviceCatalog.DELETE("/:id", controllers.DeactivateService)
			serviceCatalog.PATCH("/:id/price", controllers.UpdateServicePrice)
			serviceCatalog.PATCH("/:id/toggle-active", controllers.ToggleServiceActive)
		}

		stock := api.Group("/stock")
		{
			stock.GET("", controllers.ListStockItems)
			stock.GET("/:id", controllers.GetStockItem)
			stock.POST("", controllers.CreateStockItem)
			stock.PUT("/:id", controllers.UpdateStockItem)
			stock.DELETE("/:id", controllers.DeleteStockItem)
			stock.PATCH("/:id/quantity", controllers.AdjustStockQuantity)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", controllers.ListOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.POST("", controllers.CreateOrder)
			orders.PATCH("/:id", controllers.UpdateOrder)
			orders.DELETE("/:id", controllers.DeleteOrder)
			orders.PATCH("/:id/status", controllers.UpdateOrderStatus)
		}

		customCases := api.Group("/custom-cases")
		{
			customCases.GET("", controllers.ListCustomCases)
			customCases.GET("/:id", controllers.GetCustomCase)
			customCases.POST("", controllers.CreateCustomCase)
			customCases.PATCH("/:id", controllers.UpdateCustomCase)
			customCases.DELETE("/:id", controllers.DeleteCustomCase)
			customCases.PATCH("/:id/status", controllers.UpdateCustomCaseStatus)
			customCases.POST("/:id/upload-design", controllers.UploadDesign)
		}
	}
}

// healthCheck reports API liveness and storage connectivity
func healthCheck(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Repair shop API is running",
	})
}
