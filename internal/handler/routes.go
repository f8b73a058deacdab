package handler

import (
	"gamehub/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the REST API on api, normally the /api group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	authRequired := auth.AuthMiddleware(h.Sessions)
	can := auth.RequirePermission

	var throttle gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if h.AuthLimiter != nil {
		throttle = h.AuthLimiter.Middleware()
	}

	// Auth routes
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", throttle, h.Register)
		authRoutes.POST("/login", throttle, h.Login)
		authRoutes.POST("/logout", authRequired, h.Logout)
		authRoutes.GET("/me", authRequired, h.GetMe)
	}

	// Game routes
	gameRoutes := api.Group("/games")
	{
		gameRoutes.GET("", auth.OptionalAuthMiddleware(h.Sessions), h.GetGames)
		gameRoutes.GET("/:id", h.GetGameByID)
		gameRoutes.POST("", authRequired, can(auth.ActionAddGame), h.CreateGame)
		gameRoutes.DELETE("/:id", authRequired, can(auth.ActionDeleteGame), h.DeleteGame)
	}

	commentRoutes := api.Group("/comments")
	{
		commentRoutes.GET("", h.GetComments)
		commentRoutes.POST("", authRequired, can(auth.ActionComment), h.CreateComment)
		commentRoutes.PUT("/:id/like", authRequired, can(auth.ActionLike), h.ToggleCommentLike)
		commentRoutes.DELETE("/:id", authRequired, h.DeleteComment)
	}

	ratingRoutes := api.Group("/ratings")
	{
		ratingRoutes.GET("/:gameId", h.GetRatings)
		ratingRoutes.POST("", authRequired, can(auth.ActionRate), h.RateGame)
		ratingRoutes.POST("/:gameId", authRequired, can(auth.ActionRate), h.RateGame)
	}

	// Ownership is checked by the catalog service.
	favoriteRoutes := api.Group("/favorites")
	favoriteRoutes.Use(authRequired, can(auth.ActionFavorite))
	{
		favoriteRoutes.GET("/:userId", h.GetFavorites)
		favoriteRoutes.POST("", h.AddFavorite)
		favoriteRoutes.DELETE("/:userId/:gameId", h.RemoveFavorite)
	}

	requestRoutes := api.Group("/requests")
	requestRoutes.Use(authRequired)
	{
		requestRoutes.GET("", h.GetRequests)
		requestRoutes.POST("", can(auth.ActionRequestGame), h.CreateRequest)
		requestRoutes.PUT("/:id", can(auth.ActionManageRequests), h.UpdateRequestStatus)
		requestRoutes.DELETE("/:id", can(auth.ActionManageRequests), h.DeleteRequest)
	}

	// User routes (protected)
	userRoutes := api.Group("/users")
	userRoutes.Use(authRequired)
	{
		userRoutes.GET("", can(auth.ActionManageUsers), h.GetUsers)
		userRoutes.PUT("/:id/role", can(auth.ActionManageUsers), h.UpdateUserRole)
		userRoutes.DELETE("/:id", can(auth.ActionManageUsers), h.DeleteUser)
		userRoutes.PUT("/:id/profile", can(auth.ActionEditProfile), h.UpdateProfile)
	}

	uploadRoutes := api.Group("/upload")
	uploadRoutes.Use(authRequired, can(auth.ActionUpload))
	{
		uploadRoutes.POST("/avatar", h.UploadAvatar)
		uploadRoutes.POST("/banner", h.UploadBanner)
	}

	threadRoutes := api.Group("/threads")
	{
		threadRoutes.GET("", h.GetThreads)
		threadRoutes.GET("/:id", h.GetThreadByID)
		threadRoutes.GET("/:id/messages", h.GetThreadMessages)
		threadRoutes.GET("/:id/events", h.StreamThreadEvents)

		threadRoutes.POST("", authRequired, can(auth.ActionCreateThread), h.CreateThread)
		threadRoutes.POST("/:id/messages", authRequired, can(auth.ActionPostMessage), h.PostThreadMessage)
		threadRoutes.PUT("/:id/messages/:messageId/like", authRequired, can(auth.ActionLike), h.ToggleMessageLike)
		threadRoutes.DELETE("/:id/messages/:messageId", authRequired, h.DeleteThreadMessage)
		threadRoutes.PUT("/:id/lock", authRequired, can(auth.ActionLockThread), h.LockThread)
		threadRoutes.DELETE("/:id", authRequired, can(auth.ActionModerate), h.DeleteThread)
	}

	api.GET("/stats", h.GetStats)
}
