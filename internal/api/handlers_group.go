package api

import "Evergreen/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	ChatHandler         *handler.ChatHandler
	WsHandler           *handler.WsHandler
	NotificationHandler *handler.NotificationHandler
	PresenceHandler     *handler.PresenceHandler
	MediaHandler        *handler.MediaHandler
}
