package api

import (
	"Evergreen/internal/api/middleware"
	"Evergreen/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/login/google", group.UserHandler.LoginWithGoogle)
			userGroup.GET("/search", group.UserHandler.SearchUsers)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/profile", group.UserHandler.GetProfile)
				authGroup.PUT("/profile", group.UserHandler.UpdateProfile)
				authGroup.GET("/theme", group.UserHandler.GetTheme)
				authGroup.PUT("/theme", group.UserHandler.SetTheme)
			}
		}

		chatGroup := apiGroup.Group("/chat")
		{
			// ws 自带 token 鉴权
			chatGroup.GET("/ws", group.WsHandler.Connect)

			authGroup := chatGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/send", group.ChatHandler.Send)
				authGroup.PUT("/message/:id", group.ChatHandler.Edit)
				authGroup.DELETE("/message/:id", group.ChatHandler.Delete)
				authGroup.GET("/history", group.ChatHandler.History)
				authGroup.GET("/list", group.ChatHandler.List)
			}
		}

		notifyGroup := apiGroup.Group("/notifications")
		notifyGroup.Use(middleware.AuthMiddleware())
		{
			notifyGroup.GET("", group.NotificationHandler.List)
			notifyGroup.GET("/badge", group.NotificationHandler.Badge)
			notifyGroup.DELETE("/read", group.NotificationHandler.ClearRead)
			notifyGroup.DELETE("/:id", group.NotificationHandler.Dismiss)
		}

		presenceGroup := apiGroup.Group("/presence")
		presenceGroup.Use(middleware.AuthMiddleware())
		{
			presenceGroup.GET("/:uid", group.PresenceHandler.Get)
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/avatar", group.MediaHandler.UploadAvatar)
		}
	}

	return r
}
