package biz

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kart-io/logger"
	"github.com/patrickmn/go-cache"

	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/pkg/utils/errors"
	"github.com/kart-io/datanikah/pkg/utils/id"
)

// session is an append-only conversation log.
type session struct {
	mu       sync.Mutex
	id       string
	messages []*model.ChatMessage
}

func (s *session) append(m *model.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

func (s *session) snapshot() *model.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]*model.ChatMessage, len(s.messages))
	copy(msgs, s.messages)
	return &model.ChatSession{ID: s.id, Messages: msgs}
}

// ChatService keeps conversations and answers messages through a Dispatcher.
// Sessions expire after ttl of inactivity.
type ChatService struct {
	dispatcher *Dispatcher
	region     string
	ttl        time.Duration
	sessions   *cache.Cache
	mu         sync.Mutex
}

// NewChatService creates a new ChatService.
func NewChatService(dispatcher *Dispatcher, region string, ttl time.Duration) *ChatService {
	return &ChatService{
		dispatcher: dispatcher,
		region:     region,
		ttl:        ttl,
		sessions:   cache.New(ttl, ttl/2+time.Second),
	}
}

// Start opens a session seeded with the welcome message.
func (s *ChatService) Start() *model.ChatSession {
	return s.start().snapshot()
}

func (s *ChatService) start() *session {
	sess := &session{id: id.NewUUID()}
	sess.append(newMessage(model.RoleAssistant, WelcomeText(s.region)))
	s.sessions.Set(sess.id, sess, cache.DefaultExpiration)
	return sess
}

// Session returns a snapshot of the conversation.
func (s *ChatService) Session(sessionID string) (*model.ChatSession, error) {
	v, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, errors.ErrChatSessionNotFound
	}
	return v.(*session).snapshot(), nil
}

// Send appends text as a user message, dispatches it and appends the answer.
// An empty or expired sessionID starts a new session.
func (s *ChatService) Send(ctx context.Context, sessionID, text string) (*model.SendMessageResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.ErrInvalidParam.WithMessages("Message text is required", "Pesan tidak boleh kosong")
	}
	sess := s.lookupOrStart(sessionID)

	question := newMessage(model.RoleUser, text)
	sess.append(question)

	reply := s.dispatcher.Dispatch(ctx, question.Text)
	answer := newMessage(model.RoleAssistant, reply.Text)
	answer.Records = reply.Records
	answer.Stats = reply.Stats
	sess.append(answer)

	// 刷新会话过期时间
	s.sessions.Set(sess.id, sess, cache.DefaultExpiration)

	logger.Infow("chat message answered",
		"session_id", sess.id,
		"intent", reply.Intent,
		"records", len(reply.Records),
	)

	return &model.SendMessageResponse{
		SessionID: sess.id,
		Question:  question,
		Answer:    answer,
	}, nil
}

func (s *ChatService) lookupOrStart(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID != "" {
		if v, ok := s.sessions.Get(sessionID); ok {
			return v.(*session)
		}
	}
	return s.start()
}

func newMessage(role, text string) *model.ChatMessage {
	return &model.ChatMessage{
		ID:        id.NewULID(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}
