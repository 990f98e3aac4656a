package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdiallo/gestion-etudiants/internal/app/controllers"
	"github.com/mdiallo/gestion-etudiants/internal/app/models/dto"
	"github.com/mdiallo/gestion-etudiants/internal/middleware"
)

// SetupRouter configures all application routes.
//
// Student and filiere routes are deliberately left unauthenticated; that
// mirrors the mobile client's current contract, which only gates the
// account endpoints.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public auth routes ---
	auth := router.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated account routes ---
	authProtected := router.Group("/auth")
	authProtected.Use(authMiddleware.JWTAuth())
	{
		authProtected.GET("/me", authController.Me)
		authProtected.PUT("/me", authController.UpdateMe)
	}

	users := router.Group("/users")
	users.Use(authMiddleware.JWTAuth())
	{
		users.PUT("/:id/email", authController.UpdateEmail)
	}

	// --- Student routes ---
	etudiants := router.Group("/etudiants")
	{
		etudiants.GET("", studentController.List)
		etudiants.POST("", studentController.Create)
		etudiants.GET("/:id", studentController.GetByID)
		etudiants.PUT("/:id", studentController.Update)
		etudiants.DELETE("/:id", studentController.Delete)
		etudiants.PUT("/:id/photo", studentController.ReplacePhoto)
	}

	// --- Filiere projection ---
	router.GET("/filieres", studentController.Filieres)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Unmatched routes
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("route not found"))
	})
}
