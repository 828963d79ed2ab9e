package routes

import (
	"SmashSessions/controllers"
	"SmashSessions/middleware"
	"SmashSessions/services/redis"
	"SmashSessions/services/sessions"
	socketio_types "SmashSessions/services/socket_io/types"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, svc *sessions.Service, redisClient *redis.RedisClient, sio *socketio_types.SocketServer) {
	// Command descriptors are resolved once, at startup
	commandTable := controllers.CommandTable(svc, redisClient, sio)

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/login", controllers.Login)

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		// Slash-command surface
		authentication.GET("/commands", controllers.ListCommands(commandTable))
		authentication.POST("/commands/:name", controllers.DispatchCommand(commandTable))

		// Component interactions (buttons, dropdown)
		authentication.POST("/interactions", controllers.ComponentCallback(svc, redisClient, sio))
		authentication.POST("/interactions/context", controllers.RegisterInteractionContext(redisClient))

		// REST surface over the same lifecycle
		authentication.GET("/sessions", controllers.ListSessions(svc))
		authentication.POST("/sessions", controllers.CreateSession(svc, sio))
		authentication.GET("/sessions/next", controllers.NextSession(svc, redisClient))
		authentication.GET("/sessions/:n", controllers.ShowSession(svc, redisClient))
		authentication.PATCH("/sessions/:n", controllers.UpdateSession(svc, sio))
		authentication.DELETE("/sessions/:n", controllers.DeleteSession(svc, sio))
		authentication.POST("/sessions/:n/join", controllers.JoinSession(svc, sio))
		authentication.POST("/sessions/:n/leave", controllers.LeaveSession(svc, sio))
		authentication.POST("/sessions/:n/equipment/:kind", controllers.BringEquipment(svc, sio))
	}
}
