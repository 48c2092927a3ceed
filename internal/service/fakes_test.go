package service

import (
	"Evergreen/internal/model"
	"Evergreen/internal/pkg/es"
	mongodb "Evergreen/internal/pkg/mongo"
	"Evergreen/internal/pkg/security"
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// opLog 跨 fake 共享的操作记录，用于断言调用顺序
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(op string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

func (l *opLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ops...)
}

type fakeMessageRepo struct {
	log      *opLog
	messages map[primitive.ObjectID]*mongodb.Message
}

func newFakeMessageRepo(log *opLog) *fakeMessageRepo {
	return &fakeMessageRepo{
		log:      log,
		messages: make(map[primitive.ObjectID]*mongodb.Message),
	}
}

func (s *fakeMessageRepo) SaveMessage(_ context.Context, msg *mongodb.Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	msg.CreatedAt = time.Now().UTC()
	copied := *msg
	s.messages[msg.ID] = &copied
	if s.log != nil {
		s.log.add("save_message")
	}
	return nil
}

func (s *fakeMessageRepo) GetByID(_ context.Context, id primitive.ObjectID) (*mongodb.Message, error) {
	msg, ok := s.messages[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *msg
	return &copied, nil
}

func (s *fakeMessageRepo) ListByConversation(_ context.Context, convKey string) ([]*mongodb.Message, error) {
	var res []*mongodb.Message
	for _, msg := range s.messages {
		if msg.ConvKey == convKey {
			copied := *msg
			res = append(res, &copied)
		}
	}
	return res, nil
}

func (s *fakeMessageRepo) MarkRead(_ context.Context, convKey string, receiverUID string) (int64, error) {
	var n int64
	for _, msg := range s.messages {
		if msg.ConvKey == convKey && msg.ReceiverUID == receiverUID && !msg.Read {
			msg.Read = true
			n++
		}
	}
	return n, nil
}

func (s *fakeMessageRepo) SetEdited(_ context.Context, id primitive.ObjectID, text string, editedAt time.Time) error {
	msg, ok := s.messages[id]
	if !ok || msg.Deleted {
		return mongo.ErrNoDocuments
	}
	msg.Text = text
	msg.Edited = true
	msg.EditedAt = &editedAt
	return nil
}

func (s *fakeMessageRepo) SetTombstone(_ context.Context, id primitive.ObjectID, placeholder string) error {
	msg, ok := s.messages[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	msg.Deleted = true
	msg.Text = placeholder
	msg.StickerURL = ""
	msg.StickerName = ""
	msg.VoiceURL = ""
	msg.Duration = 0
	return nil
}

type fakeConversationRepo struct {
	convs map[string]*model.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{convs: make(map[string]*model.Conversation)}
}

func (s *fakeConversationRepo) Touch(_ context.Context, conv *model.Conversation) error {
	copied := *conv
	s.convs[conv.ConvKey] = &copied
	return nil
}

func (s *fakeConversationRepo) GetByKey(_ context.Context, convKey string) (*model.Conversation, error) {
	conv, ok := s.convs[convKey]
	if !ok {
		return nil, nil
	}
	return conv, nil
}

func (s *fakeConversationRepo) ListByMember(_ context.Context, uid string) ([]*model.Conversation, error) {
	var res []*model.Conversation
	for _, conv := range s.convs {
		if conv.UIDLow == uid || conv.UIDHigh == uid {
			res = append(res, conv)
		}
	}
	return res, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	s := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		s.users[u.UID] = u
	}
	return s
}

func (s *fakeUserRepo) GetUserByUID(_ context.Context, uid string) (*model.User, error) {
	return s.users[uid], nil
}

func (s *fakeUserRepo) GetUserByUIDs(_ context.Context, uids []string) ([]*model.User, error) {
	var res []*model.User
	for _, uid := range uids {
		if u, ok := s.users[uid]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

func (s *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	s.users[user.UID] = user
	return nil
}

func (s *fakeUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	s.users[user.UID] = user
	return nil
}

func (s *fakeUserRepo) UpdateAvatar(_ context.Context, uid string, photoURL string) error {
	if u, ok := s.users[uid]; ok {
		u.PhotoURL = photoURL
	}
	return nil
}

type publishedEvent struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	log    *opLog
	events []publishedEvent
}

func (s *fakePublisher) Publish(_ context.Context, channel string, payload interface{}) error {
	data, _ := payload.([]byte)
	s.events = append(s.events, publishedEvent{channel: channel, payload: data})
	if s.log != nil {
		s.log.add("publish:" + channel)
	}
	return nil
}

type fakeProducer struct {
	log      *opLog
	produced []*mongodb.Notification
}

func (s *fakeProducer) Produce(_ context.Context, n *mongodb.Notification) error {
	s.produced = append(s.produced, n)
	if s.log != nil {
		s.log.add("produce")
	}
	return nil
}

type fakeNotificationRepo struct {
	notifications map[primitive.ObjectID]*mongodb.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[primitive.ObjectID]*mongodb.Notification)}
}

func (s *fakeNotificationRepo) Create(_ context.Context, n *mongodb.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	n.CreatedAt = time.Now().UTC()
	copied := *n
	s.notifications[n.ID] = &copied
	return nil
}

func (s *fakeNotificationRepo) List(_ context.Context, recipientUID string, limit int64) ([]*mongodb.Notification, error) {
	return s.collect(recipientUID, limit, false), nil
}

func (s *fakeNotificationRepo) ListUnread(_ context.Context, recipientUID string, limit int64) ([]*mongodb.Notification, error) {
	return s.collect(recipientUID, limit, true), nil
}

func (s *fakeNotificationRepo) collect(recipientUID string, limit int64, unreadOnly bool) []*mongodb.Notification {
	var res []*mongodb.Notification
	for _, n := range s.notifications {
		if n.RecipientUID != recipientUID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		copied := *n
		res = append(res, &copied)
		if int64(len(res)) >= limit {
			break
		}
	}
	return res
}

func (s *fakeNotificationRepo) MarkRead(_ context.Context, recipientUID string, id primitive.ObjectID) error {
	if n, ok := s.notifications[id]; ok && n.RecipientUID == recipientUID {
		n.Read = true
	}
	return nil
}

func (s *fakeNotificationRepo) DeleteRead(_ context.Context, recipientUID string) (int64, error) {
	var n int64
	for id, notif := range s.notifications {
		if notif.RecipientUID == recipientUID && notif.Read {
			delete(s.notifications, id)
			n++
		}
	}
	return n, nil
}

func (s *fakeNotificationRepo) Delete(_ context.Context, recipientUID string, id primitive.ObjectID) error {
	if n, ok := s.notifications[id]; ok && n.RecipientUID == recipientUID {
		delete(s.notifications, id)
	}
	return nil
}

type fakePresenceRepo struct {
	records map[string]*mongodb.Presence
}

func newFakePresenceRepo() *fakePresenceRepo {
	return &fakePresenceRepo{records: make(map[string]*mongodb.Presence)}
}

func (s *fakePresenceRepo) Upsert(_ context.Context, uid string, state string, email string) error {
	p, ok := s.records[uid]
	if !ok {
		p = &mongodb.Presence{UID: uid}
		s.records[uid] = p
	}
	p.State = state
	p.ChangedAt = time.Now().UTC()
	if email != "" {
		p.Email = email
	}
	return nil
}

func (s *fakePresenceRepo) Get(_ context.Context, uid string) (*mongodb.Presence, error) {
	p, ok := s.records[uid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *p
	return &copied, nil
}

func (s *fakePresenceRepo) ListOnline(_ context.Context) ([]*mongodb.Presence, error) {
	var res []*mongodb.Presence
	for _, p := range s.records {
		if p.State == "online" {
			copied := *p
			res = append(res, &copied)
		}
	}
	return res, nil
}

type fakeLiveness struct {
	alive map[string]bool
}

func newFakeLiveness() *fakeLiveness {
	return &fakeLiveness{alive: make(map[string]bool)}
}

func (s *fakeLiveness) Refresh(_ context.Context, uid string) error {
	s.alive[uid] = true
	return nil
}

func (s *fakeLiveness) Alive(_ context.Context, uid string) (bool, error) {
	return s.alive[uid], nil
}

func (s *fakeLiveness) Clear(_ context.Context, uid string) error {
	delete(s.alive, uid)
	return nil
}

type fakeESUserRepo struct {
	indexed map[string]*es.UserES
}

func newFakeESUserRepo() *fakeESUserRepo {
	return &fakeESUserRepo{indexed: make(map[string]*es.UserES)}
}

func (s *fakeESUserRepo) IndexUser(_ context.Context, user *es.UserES) error {
	s.indexed[user.UID] = user
	return nil
}

func (s *fakeESUserRepo) DeleteUser(_ context.Context, uid string) error {
	delete(s.indexed, uid)
	return nil
}

func (s *fakeESUserRepo) SearchUsers(_ context.Context, query string, _, _ int) ([]*es.UserES, error) {
	var res []*es.UserES
	for _, u := range s.indexed {
		if u.Name == query || u.Email == query {
			res = append(res, u)
		}
	}
	return res, nil
}

type fakeGoogleVerifier struct {
	info *security.GoogleTokenInfo
	err  error
}

func (s *fakeGoogleVerifier) Verify(_ context.Context, _ string) (*security.GoogleTokenInfo, error) {
	return s.info, s.err
}
