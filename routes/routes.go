package routes

import (
	"pesaswift/config"
	"pesaswift/controllers"
	"pesaswift/middleware"
	"pesaswift/services/advisor"
	"pesaswift/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin.Engine and registers every route.
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RecoveryMiddleware())

	// CORS middleware before the routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://pesaswift.co.ke", "https://www.pesaswift.co.ke"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	rdb := utils.GetRedis()

	applicationController := controllers.NewApplicationController(rdb, cfg)
	calculatorController := controllers.NewCalculatorController()
	advisorController := controllers.NewAdvisorController(rdb, advisor.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL))
	userController := controllers.NewUserController(rdb, cfg)
	dashboardController := controllers.NewDashboardController(cfg)
	bankRateController := controllers.NewBankRateController()

	r.POST("/auth/login", userController.Login)

	loans := r.Group("/loans")
	{
		loans.POST("/quote", calculatorController.Quote)
		loans.GET("/terms", calculatorController.Terms)
	}

	applications := r.Group("/applications")
	{
		applications.POST("", applicationController.Create)
		applications.GET("/:id", applicationController.Get)
		applications.POST("/:id/edit", applicationController.Edit)
		applications.POST("/:id/submit", applicationController.Submit)
		applications.POST("/:id/eligibility", advisorController.CheckEligibility)
	}

	r.POST("/advisor/advice", advisorController.GetAdvice)

	r.GET("/rates/banks", bankRateController.GetRates)

	user := r.Group("/user")
	user.Use(middleware.JWTAuthMiddleware())
	{
		user.POST("/logout", userController.Logout)
		user.GET("/profile", userController.Profile)
		user.GET("/dashboard", dashboardController.Dashboard)
		user.POST("/statement", dashboardController.Statement)
	}

	return r
}
