package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/life-record-api/internal/auth"
	"github.com/yukikurage/life-record-api/internal/config"
	"github.com/yukikurage/life-record-api/internal/handlers"
	"github.com/yukikurage/life-record-api/internal/middleware"
	"github.com/yukikurage/life-record-api/internal/repository"
	"github.com/yukikurage/life-record-api/internal/services"
	"github.com/yukikurage/life-record-api/internal/validation"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers onto a gin engine.
func New(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	checkinRepo := repository.NewCheckinRepository(db)
	weightRepo := repository.NewWeightRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo, authService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	noteHandler := handlers.NewNoteHandler(services.NewNoteService(noteRepo))
	todoHandler := handlers.NewTodoHandler(services.NewTodoService(todoRepo))
	recipeHandler := handlers.NewRecipeHandler(services.NewRecipeService(recipeRepo))
	checkinHandler := handlers.NewCheckinHandler(services.NewCheckinService(checkinRepo))
	weightHandler := handlers.NewWeightHandler(services.NewWeightService(weightRepo))
	imageHandler := handlers.NewImageHandler(services.NewImageService(cfg.Upload))

	r := gin.New()
	r.MaxMultipartMemory = cfg.Upload.MaxSizeMiB << 20
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig(cfg.CORS)))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Life Record API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(tokens)
	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)

	api := r.Group("/api/v1")
	{
		// Public routes
		api.POST("/login/access-token", middleware.RateLimit(loginLimiter), authHandler.Login)
		api.POST("/users/register", authHandler.Register)
		api.GET("/images/file/:user_id/:filename", imageHandler.Serve)

		protected := api.Group("")
		protected.Use(requireAuth)

		protected.POST("/login/test-token", authHandler.TestToken)

		users := protected.Group("/users")
		{
			users.GET("/me", authHandler.GetCurrentUser)
			users.PUT("/me", authHandler.UpdateCurrentUser)
		}

		notes := protected.Group("/notes")
		{
			notes.GET("", noteHandler.ListNotes)
			notes.POST("", noteHandler.CreateNote)
			notes.GET("/:id", noteHandler.GetNote)
			notes.PUT("/:id", noteHandler.UpdateNote)
			notes.DELETE("/:id", noteHandler.DeleteNote)
		}

		todos := protected.Group("/todos")
		{
			todos.GET("", todoHandler.ListTodos)
			todos.POST("", todoHandler.CreateTodo)
			todos.GET("/:id", todoHandler.GetTodo)
			todos.PUT("/:id", todoHandler.UpdateTodo)
			todos.DELETE("/:id", todoHandler.DeleteTodo)
		}

		recipes := protected.Group("/recipes")
		{
			recipes.GET("", recipeHandler.ListRecipes)
			recipes.POST("", recipeHandler.CreateRecipe)
			recipes.GET("/:id", recipeHandler.GetRecipe)
			recipes.PUT("/:id", recipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", recipeHandler.DeleteRecipe)
		}

		checkin := protected.Group("/checkin")
		{
			checkin.GET("/item/list", checkinHandler.ListItems)
			checkin.POST("/item/add", checkinHandler.CreateItem)
			checkin.PUT("/item/update/:id", checkinHandler.UpdateItem)
			checkin.DELETE("/item/delete/:id", checkinHandler.DeleteItem)

			checkin.GET("/record/daily", checkinHandler.Daily)
			checkin.GET("/record/date/:date", checkinHandler.Daily)
			checkin.POST("/record/save", checkinHandler.SaveRecord)
			checkin.GET("/record/history", checkinHandler.History)
		}

		weight := protected.Group("/weight")
		{
			weight.GET("/record/history", weightHandler.History)
			weight.GET("/record/today", weightHandler.Today)
			weight.GET("/record/week", weightHandler.Week)
			weight.GET("/record/month", weightHandler.Month)
			weight.POST("/record/add", weightHandler.Add)
			weight.PUT("/record/update/:id", weightHandler.Update)
			weight.DELETE("/record/delete/:id", weightHandler.Delete)
			weight.POST("/record/batch-delete", weightHandler.BatchDelete)
			weight.GET("/record/export", weightHandler.Export)

			weight.GET("/target/get", weightHandler.GetTarget)
			weight.POST("/target/set", weightHandler.SetTarget)

			weight.GET("/stat/today", weightHandler.TodayStat)
		}

		protected.POST("/images/upload", imageHandler.Upload)
	}

	return r, nil
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			c.AllowAllOrigins = true
			c.AllowCredentials = false
			return c
		}
	}
	c.AllowOrigins = cfg.AllowOrigins
	if len(c.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	}
	return c
}
