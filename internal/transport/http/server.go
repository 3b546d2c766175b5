package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appsvc "blogapi/internal/app"
	"blogapi/internal/bootstrap"
	"blogapi/internal/cache"
	"blogapi/internal/platform/rabbitmq"
	"blogapi/internal/repository"
	"blogapi/internal/transport/http/handler"
	"blogapi/internal/transport/http/middleware"
	"blogapi/internal/transport/http/response"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.CustomRecovery(func(c *gin.Context, _ any) {
			response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		}),
		middleware.ErrorTranslator(),
	)

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	tokenStore := cache.NewTokenStore(app.Redis)

	var activities appsvc.ActivityPublisher
	if app.MQConn != nil {
		activities = rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)
	}

	authService := appsvc.NewAuthService(userRepo, tokenStore, activities, app.Config.Auth.JWTSecret)
	userService := appsvc.NewUserService(userRepo, activities, app.Config.App.DefaultPerPage, app.Config.App.MaxPerPage)
	postService := appsvc.NewPostService(postRepo, activities, app.Config.App.DefaultPerPage, app.Config.App.MaxPerPage)

	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/health", healthHandler.Live)
	router.GET("/readyz", healthHandler.Ready)

	router.POST("/login", authHandler.Login)
	router.POST("/register", authHandler.Register)

	authed := router.Group("/", middleware.Auth(authService))
	authed.POST("/logout", authHandler.Logout)

	authed.GET("/users", userHandler.List)
	authed.POST("/users", userHandler.Create)
	authed.GET("/users/:id", userHandler.Show)
	authed.PUT("/users/:id", userHandler.Update)
	authed.PATCH("/users/:id", userHandler.Update)
	authed.DELETE("/users/:id", userHandler.Delete)

	authed.GET("/posts", postHandler.List)
	authed.POST("/posts", postHandler.Create)
	authed.GET("/posts/:id", postHandler.Show)
	authed.PUT("/posts/:id", postHandler.Update)
	authed.PATCH("/posts/:id", postHandler.Update)
	authed.DELETE("/posts/:id", postHandler.Delete)

	return router
}
