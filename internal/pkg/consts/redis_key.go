package consts

const (
	// ChatChannelKey 会话事件频道，后接会话标识
	ChatChannelKey = "chat:conv:"
	// NotifyChannelKey 用户通知频道，后接用户 UID
	NotifyChannelKey = "notify:user:"
	// PresenceChannelKey 在线状态频道，后接用户 UID
	PresenceChannelKey = "presence:user:"
	// PresenceLiveKey 在线心跳键（带 TTL），后接用户 UID
	PresenceLiveKey = "presence:live:"
	// UserThemeKey 主题偏好，后接用户 UID
	UserThemeKey = "user:theme:"
)
