package handler

import (
	"Evergreen/internal/api/dto"
	"Evergreen/internal/pkg/chat"
	"Evergreen/internal/pkg/consts"
	"Evergreen/internal/pkg/redis"
	"Evergreen/internal/pkg/response"
	"Evergreen/internal/pkg/security"
	"Evergreen/internal/service"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsCommand 客户端上行指令
type wsCommand struct {
	Action  string `json:"action"`   // focus / blur / ping
	PeerUID string `json:"peer_uid"` // focus 所需
}

type WsHandler struct {
	chatSvc     service.ChatService
	userSvc     service.UserService
	presenceSvc service.PresenceService
}

func NewWsHandler(chatSvc service.ChatService, userSvc service.UserService, presenceSvc service.PresenceService) *WsHandler {
	return &WsHandler{
		chatSvc:     chatSvc,
		userSvc:     userSvc,
		presenceSvc: presenceSvc,
	}
}

// Connect websocket 连接即会话：上线、订阅、推送，断开即下线
func (s *WsHandler) Connect(c *gin.Context) {
	// 鉴权
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("WS 鉴权失败", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}
	uid := claims.UID

	// 升级 Websocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	ctx := context.Background()

	// 上线，重复连接幂等
	if err = s.presenceSvc.Online(ctx, uid, claims.Email); err != nil {
		log.Error("上线失败", "uid", uid, "err", err)
	}
	defer func() {
		// 断开即尽力下线
		_ = s.presenceSvc.Offline(ctx, uid)
	}()

	// 订阅：个人通知频道 + 已有会话频道 + 对端状态频道
	channels := []string{consts.NotifyChannelKey + uid}
	list, err := s.chatSvc.GetConversationList(ctx, uid)
	if err != nil {
		log.Error("获取会话列表失败", "uid", uid, "err", err)
		return
	}
	for _, conv := range list {
		channels = append(channels,
			consts.ChatChannelKey+conv.ConvKey,
			consts.PresenceChannelKey+conv.PeerUID,
		)
	}

	pubsub := redis.Subscribe(ctx, channels...)
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("用户 WS 连接已建立", "uid", uid, "channels", len(channels))

	// 资料未完善提示
	if profile, err := s.userSvc.GetProfile(ctx, uid); err == nil && profile.PhotoURL == "" {
		s.push(conn, map[string]string{"type": "profile_completion"})
	}

	stopChan := make(chan struct{})
	cmdChan := make(chan wsCommand, 8)

	// 读循环：解析客户端指令，连接断开时收尾
	go func() {
		defer close(stopChan)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var cmd wsCommand
			if err = json.Unmarshal(data, &cmd); err != nil {
				continue
			}
			select {
			case cmdChan <- cmd:
			case <-stopChan:
				return
			}
		}
	}()

	// focusedConv 当前聚焦的会话频道，聚焦期间收到的消息即时置读
	var focusedPeer, focusedChannel string

	redisCh := pubsub.Channel()
	for {
		select {
		case cmd := <-cmdChan:
			switch cmd.Action {
			case "focus":
				convKey, err := chat.ConversationKey(uid, cmd.PeerUID)
				if err != nil {
					continue
				}
				focusedPeer = cmd.PeerUID
				focusedChannel = consts.ChatChannelKey + convKey
				// 新会话此前不在订阅列表里
				if err = pubsub.Subscribe(ctx, focusedChannel, consts.PresenceChannelKey+cmd.PeerUID); err != nil {
					log.Error("订阅会话频道失败", "uid", uid, "err", err)
				}
				// 打开即把现有未读置为已读
				if _, err = s.chatSvc.MarkConversationRead(ctx, uid, cmd.PeerUID); err != nil {
					log.Error("置读失败", "uid", uid, "err", err)
				}
			case "blur":
				focusedPeer = ""
				focusedChannel = ""
			case "ping":
				if err := s.presenceSvc.Heartbeat(ctx, uid); err != nil {
					log.Error("心跳刷新失败", "uid", uid, "err", err)
				}
			}

		case msg, ok := <-redisCh:
			if !ok {
				return
			}
			// 聚焦会话内发给自己的新消息，送达即置读
			if focusedChannel != "" && msg.Channel == focusedChannel {
				var event dto.ChatEventDTO
				if err := json.Unmarshal([]byte(msg.Payload), &event); err == nil &&
					event.Type == "message" && event.Message != nil && event.Message.ReceiverUID == uid {
					if _, err = s.chatSvc.MarkConversationRead(ctx, uid, focusedPeer); err != nil {
						log.Error("置读失败", "uid", uid, "err", err)
					}
				}
			}

			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Error("WS 推送失败", "uid", uid, "err", err)
				return
			}

		case <-stopChan:
			log.Info("用户 WS 连接已断开", "uid", uid)
			return
		}
	}
}

func (s *WsHandler) push(conn *websocket.Conn, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	_ = conn.WriteMessage(websocket.TextMessage, data)
}
