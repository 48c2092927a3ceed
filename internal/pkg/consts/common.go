package consts

const MimePrefixImage = "image"

// 消息类型
const (
	MsgKindText    = "text"
	MsgKindSticker = "sticker"
	MsgKindVoice   = "voice"
)

// 撤回消息的占位内容
const (
	TombstoneText    = "This message was deleted"
	TombstoneSticker = "This sticker was deleted"
	TombstoneVoice   = "This voice note was deleted"
)

// 通知预览
const (
	NotifyPreviewLimit   = 50
	NotifyPreviewSticker = "🎨 Sent a sticker"
	NotifyPreviewVoice   = "🎤 Sent a voice note"
)

const (
	NotifyTypeMessage = "message"
)

// 在线状态
const (
	PresenceOnline  = "online"
	PresenceOffline = "offline"
)

// 未读角标最多统计条数
const BadgeLimit = 10

// 通知列表单页条数
const NotificationListLimit = 20

// 主题偏好
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// 头像上传限制
const (
	AvatarMaxBytes = 5 * 1024 * 1024
	AvatarThumbPx  = 512
)
