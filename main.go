package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/ddiazp/maintenance-orders-api/config"
	"github.com/ddiazp/maintenance-orders-api/controllers"
	"github.com/ddiazp/maintenance-orders-api/middleware"
	"github.com/ddiazp/maintenance-orders-api/models"
	"github.com/ddiazp/maintenance-orders-api/services"
	"github.com/ddiazp/maintenance-orders-api/store"
)

func main() {
	log.Println("Starting Maintenance Orders API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if err := models.ValidateSchemas(); err != nil {
		log.Fatalf("Invalid range schema: %v", err)
	}

	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	tableStore := store.NewTableStore(config.GetDB())
	if err := tableStore.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	artifacts, err := buildArtifactStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize artifact store: %v", err)
	}

	fetcher := services.NewImageFetcher(cfg.ImageFetchTimeout)
	reports := services.NewReportService(fetcher, services.NewPDFRenderer(), artifacts)

	services.InitAuthService(tableStore, cfg)
	services.InitOrderService(tableStore, reports, artifacts)
	services.InitUserService(tableStore)

	if err := seedAdminUser(cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	router := setupRouter()

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildArtifactStore picks the configured artifact backend.
func buildArtifactStore(cfg *config.Config) (services.ArtifactStore, error) {
	if cfg.ArtifactBackend == "s3" {
		return services.NewS3ArtifactStore(cfg)
	}
	return services.NewLocalArtifactStore(cfg.ReportsDir), nil
}

// seedAdminUser creates the initial superadmin when the users range is
// empty and admin credentials are configured.
func seedAdminUser(cfg *config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminSecret == "" {
		return nil
	}

	users, err := services.GetUserService().List(context.Background())
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	log.Printf("Seeding initial superadmin user %q", cfg.AdminUsername)
	return services.GetUserService().Create(context.Background(), models.User{
		Username: cfg.AdminUsername,
		Secret:   cfg.AdminSecret,
		Role:     models.RoleSuperadmin,
	})
}

// setupRouter builds the full route table.
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/login", controllers.Login)

		authed := v1.Group("")
		authed.Use(middleware.ExtractCredential(services.GetAuthService()))
		{
			authed.GET("/orders", controllers.ListOrders)
			authed.POST("/orders", controllers.CreateOrder)
			authed.PUT("/orders/assign", controllers.AssignTech)
			authed.PUT("/orders/close", controllers.CloseOrder)
			authed.GET("/orders/summary", controllers.GetSummary)

			admin := authed.Group("/users")
			admin.Use(middleware.RequireRole(models.RoleSuperadmin, models.RoleAdmin))
			{
				admin.GET("", controllers.ListUsers)
				admin.POST("", controllers.CreateUser)
				admin.PUT("", controllers.UpdateUser)
				admin.DELETE("", controllers.DeleteUser)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Maintenance Orders API is running",
	})
}
