package model

import "time"

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry of an append-only conversation log.
type ChatMessage struct {
	ID        string            `json:"id"`
	Role      string            `json:"role"`
	Text      string            `json:"text"`
	Records   []*MarriageRecord `json:"records,omitempty"`
	Stats     *YearSummary      `json:"stats,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// ChatSession is a conversation snapshot.
type ChatSession struct {
	ID       string         `json:"id"`
	Messages []*ChatMessage `json:"messages"`
}

// SendMessageRequest is the body of POST /v1/chat/messages.
type SendMessageRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=64"`
	Text      string `json:"text" validate:"required,notblank,max=500"`
}

// SendMessageResponse carries the two messages appended by one exchange.
type SendMessageResponse struct {
	SessionID string       `json:"session_id"`
	Question  *ChatMessage `json:"question"`
	Answer    *ChatMessage `json:"answer"`
}
