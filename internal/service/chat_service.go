package service

import (
	"Evergreen/internal/api/dto"
	"Evergreen/internal/model"
	"Evergreen/internal/pkg/chat"
	"Evergreen/internal/pkg/consts"
	mongodb "Evergreen/internal/pkg/mongo"
	"Evergreen/internal/pkg/util"
	"Evergreen/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ChatService 即时通讯服务接口定义
type ChatService interface {
	SendMessage(ctx context.Context, senderUID string, req *dto.SendMessageDTO) (*dto.MessageDTO, error)
	EditMessage(ctx context.Context, uid string, msgID string, req *dto.EditMessageDTO) (*dto.MessageDTO, error)
	DeleteMessage(ctx context.Context, uid string, msgID string) error
	GetHistory(ctx context.Context, uid string, peerUID string) ([]*dto.MessageDTO, error)
	GetConversationList(ctx context.Context, uid string) ([]*dto.ConversationDTO, error)
	MarkConversationRead(ctx context.Context, uid string, peerUID string) (int64, error)
}

type chatServiceImpl struct {
	convRepo  repository.ConversationRepo
	msgRepo   mongodb.MessageRepo
	userRepo  repository.UserRepo
	producer  NotificationProducer
	publisher Publisher
}

func NewChatService(
	convRepo repository.ConversationRepo,
	msgRepo mongodb.MessageRepo,
	userRepo repository.UserRepo,
	producer NotificationProducer,
	publisher Publisher,
) ChatService {
	return &chatServiceImpl{
		convRepo:  convRepo,
		msgRepo:   msgRepo,
		userRepo:  userRepo,
		producer:  producer,
		publisher: publisher,
	}
}

// SendMessage 发送消息
// 顺序约束：消息先落库，再产出通知事件
func (s *chatServiceImpl) SendMessage(ctx context.Context, senderUID string, req *dto.SendMessageDTO) (*dto.MessageDTO, error) {
	convKey, err := chat.ConversationKey(senderUID, req.PeerUID)
	if err != nil {
		return nil, err
	}

	msg := &mongodb.Message{
		ConvKey:     convKey,
		Kind:        req.Kind,
		SenderUID:   senderUID,
		ReceiverUID: req.PeerUID,
		Read:        false,
	}

	var preview string
	switch req.Kind {
	case consts.MsgKindText:
		text := strings.TrimSpace(req.Text)
		if text == "" {
			return nil, ErrMessageEmpty
		}
		msg.Text = text
		preview = util.TruncateRunes(text, consts.NotifyPreviewLimit)
	case consts.MsgKindSticker:
		if req.StickerURL == "" {
			return nil, ErrParamInvalid
		}
		msg.StickerURL = req.StickerURL
		msg.StickerName = req.StickerName
		preview = consts.NotifyPreviewSticker
	case consts.MsgKindVoice:
		if req.VoiceURL == "" || req.Duration <= 0 {
			return nil, ErrParamInvalid
		}
		msg.VoiceURL = req.VoiceURL
		msg.Duration = req.Duration
		preview = consts.NotifyPreviewVoice
	default:
		return nil, ErrParamInvalid
	}

	sender, err := s.userRepo.GetUserByUID(ctx, senderUID)
	if err != nil {
		return nil, UnExpectedError
	}
	if sender == nil {
		return nil, ErrUserNotFound
	}

	if err = s.msgRepo.SaveMessage(ctx, msg); err != nil {
		return nil, UnExpectedError
	}

	uidLow, uidHigh := senderUID, req.PeerUID
	if uidHigh < uidLow {
		uidLow, uidHigh = uidHigh, uidLow
	}
	conv := &model.Conversation{
		ConvKey:        convKey,
		UIDLow:         uidLow,
		UIDHigh:        uidHigh,
		LastMsgPreview: preview,
		LastMsgKind:    req.Kind,
		LastSenderUID:  senderUID,
		LastMessageAt:  msg.CreatedAt,
	}
	if err = s.convRepo.Touch(ctx, conv); err != nil {
		log.ErrorContext(ctx, "touch conversation failed", "conv_key", convKey, "err", err)
	}

	msgDTO := s.toMessageDTO(msg)
	s.publishChatEvent(ctx, &dto.ChatEventDTO{
		Type:    "message",
		ConvKey: convKey,
		Message: msgDTO,
	})

	notification := &mongodb.Notification{
		RecipientUID: req.PeerUID,
		SenderUID:    senderUID,
		SenderName:   sender.Name,
		Type:         consts.NotifyTypeMessage,
		Preview:      preview,
		ConvKey:      convKey,
	}
	if err = s.producer.Produce(ctx, notification); err != nil {
		log.ErrorContext(ctx, "produce notification failed", "conv_key", convKey, "err", err)
	}

	return msgDTO, nil
}

// EditMessage 编辑文本消息，仅发送者可操作，撤回后不可编辑
func (s *chatServiceImpl) EditMessage(ctx context.Context, uid string, msgID string, req *dto.EditMessageDTO) (*dto.MessageDTO, error) {
	id, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	msg, err := s.msgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMessageNotFound
		}
		return nil, UnExpectedError
	}
	if msg.SenderUID != uid {
		return nil, ErrNotMessageSender
	}
	if msg.Deleted {
		return nil, ErrMessageDeleted
	}
	if msg.Kind != consts.MsgKindText {
		return nil, ErrMessageNotEditable
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrMessageEmpty
	}

	editedAt := time.Now().UTC()
	if err = s.msgRepo.SetEdited(ctx, id, text, editedAt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// 并发撤回赢了
			return nil, ErrMessageDeleted
		}
		return nil, UnExpectedError
	}

	msg.Text = text
	msg.Edited = true
	msg.EditedAt = &editedAt

	msgDTO := s.toMessageDTO(msg)
	s.publishChatEvent(ctx, &dto.ChatEventDTO{
		Type:    "edited",
		ConvKey: msg.ConvKey,
		Message: msgDTO,
	})
	return msgDTO, nil
}

// DeleteMessage 撤回消息，重复撤回直接成功
func (s *chatServiceImpl) DeleteMessage(ctx context.Context, uid string, msgID string) error {
	id, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return ErrParamInvalid
	}

	msg, err := s.msgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrMessageNotFound
		}
		return UnExpectedError
	}
	if msg.SenderUID != uid {
		return ErrNotMessageSender
	}
	if msg.Deleted {
		return nil
	}

	placeholder := consts.TombstoneText
	switch msg.Kind {
	case consts.MsgKindSticker:
		placeholder = consts.TombstoneSticker
	case consts.MsgKindVoice:
		placeholder = consts.TombstoneVoice
	}

	if err = s.msgRepo.SetTombstone(ctx, id, placeholder); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrMessageNotFound
		}
		return UnExpectedError
	}

	msg.Deleted = true
	msg.Text = placeholder
	msg.StickerURL = ""
	msg.StickerName = ""
	msg.VoiceURL = ""
	msg.Duration = 0

	s.publishChatEvent(ctx, &dto.ChatEventDTO{
		Type:    "deleted",
		ConvKey: msg.ConvKey,
		Message: s.toMessageDTO(msg),
	})
	return nil
}

// GetHistory 拉取会话历史，按写入时间升序
func (s *chatServiceImpl) GetHistory(ctx context.Context, uid string, peerUID string) ([]*dto.MessageDTO, error) {
	convKey, err := chat.ConversationKey(uid, peerUID)
	if err != nil {
		return nil, err
	}

	messages, err := s.msgRepo.ListByConversation(ctx, convKey)
	if err != nil {
		return nil, UnExpectedError
	}

	res := make([]*dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		res = append(res, s.toMessageDTO(m))
	}
	return res, nil
}

// GetConversationList 获取会话列表，按最后消息时间倒序
func (s *chatServiceImpl) GetConversationList(ctx context.Context, uid string) ([]*dto.ConversationDTO, error) {
	convs, err := s.convRepo.ListByMember(ctx, uid)
	if err != nil {
		return nil, UnExpectedError
	}

	res := make([]*dto.ConversationDTO, 0, len(convs))
	for _, conv := range convs {
		peer := conv.UIDLow
		if peer == uid {
			peer = conv.UIDHigh
		}
		res = append(res, &dto.ConversationDTO{
			ConvKey:        conv.ConvKey,
			PeerUID:        peer,
			LastMsgPreview: conv.LastMsgPreview,
			LastMsgKind:    conv.LastMsgKind,
			LastSenderUID:  conv.LastSenderUID,
			LastMessageAt:  conv.LastMessageAt,
		})
	}
	return res, nil
}

// MarkConversationRead 将发给 uid 的未读消息置为已读并回发回执
// 条件更新幂等，重复调用不会产生多余回执
func (s *chatServiceImpl) MarkConversationRead(ctx context.Context, uid string, peerUID string) (int64, error) {
	convKey, err := chat.ConversationKey(uid, peerUID)
	if err != nil {
		return 0, err
	}

	n, err := s.msgRepo.MarkRead(ctx, convKey, uid)
	if err != nil {
		return 0, UnExpectedError
	}

	if n > 0 {
		s.publishChatEvent(ctx, &dto.ChatEventDTO{
			Type:      "read",
			ConvKey:   convKey,
			ReaderUID: uid,
		})
	}
	return n, nil
}

// publishChatEvent 发布事件到会话频道，失败只记日志
func (s *chatServiceImpl) publishChatEvent(ctx context.Context, event *dto.ChatEventDTO) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err = s.publisher.Publish(ctx, consts.ChatChannelKey+event.ConvKey, data); err != nil {
		log.ErrorContext(ctx, "publish chat event failed", "conv_key", event.ConvKey, "err", err)
	}
}

func (s *chatServiceImpl) toMessageDTO(msg *mongodb.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		ID:          msg.ID.Hex(),
		ConvKey:     msg.ConvKey,
		Kind:        msg.Kind,
		Text:        msg.Text,
		StickerURL:  msg.StickerURL,
		StickerName: msg.StickerName,
		VoiceURL:    msg.VoiceURL,
		Duration:    msg.Duration,
		SenderUID:   msg.SenderUID,
		ReceiverUID: msg.ReceiverUID,
		Read:        msg.Read,
		Edited:      msg.Edited,
		EditedAt:    msg.EditedAt,
		Deleted:     msg.Deleted,
		CreatedAt:   msg.CreatedAt,
	}
}
