package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"halo-backend/internal/allergy"
	"halo-backend/internal/analysis"
	"halo-backend/internal/auth"
	"halo-backend/internal/db"
	"halo-backend/internal/middleware"
	"halo-backend/internal/storage"
	"halo-backend/internal/uploads"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	corsOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsOrigins = []string{origins}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── REPOS & SERVICES ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	allergyRepo := allergy.NewPostgresRepository(pgDB)
	allergyService := allergy.NewService(allergyRepo)
	allergyHandler := allergy.NewHandler(allergyService)

	uploadRepo := uploads.NewPostgresRepository(pgDB)

	// The image archive is optional; without R2 config only the
	// analysis result is persisted.
	var archive uploads.Archive
	if os.Getenv("R2_ENDPOINT") != "" {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("R2 init failed:", err)
		}
		archive = r2Client
	}

	uploadService := uploads.NewService(uploadRepo, archive)
	geminiClient := analysis.NewGeminiClient()
	uploadHandler := uploads.NewHandler(uploadService, geminiClient)

	authRequired := middleware.AuthMiddleware(userRepo)

	// ───────────────────────── ROUTES ─────────────────────────
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/google", authHandler.GoogleAuth)
		authGroup.POST("/refresh", authHandler.Refresh)

		protected := authGroup.Group("")
		protected.Use(authRequired)
		{
			protected.GET("/me", authHandler.Me)
			protected.PUT("/update-profile", authHandler.UpdateProfile)
			protected.POST("/change-password", authHandler.ChangePassword)
		}
	}

	allergyGroup := api.Group("/allergy")
	allergyGroup.Use(authRequired)
	{
		allergyGroup.GET("/get", allergyHandler.Get)
		allergyGroup.POST("/add", allergyHandler.Add)
		allergyGroup.PUT("/update", allergyHandler.Update)
		allergyGroup.DELETE("/delete", allergyHandler.Delete)
	}

	menuGroup := api.Group("")
	menuGroup.Use(authRequired)
	{
		menuGroup.POST("/process-menu", uploadHandler.ProcessMenu)
		menuGroup.POST("/process-manual-input", uploadHandler.ProcessManualInput)
		menuGroup.GET("/menu-uploads", uploadHandler.List)
		menuGroup.GET("/menu-uploads/:id", uploadHandler.Get)
		menuGroup.PUT("/menu-uploads/:id", uploadHandler.Rename)
		menuGroup.DELETE("/menu-uploads/:id", uploadHandler.Delete)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("API running on port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
