package assistant

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

const (
	Greeting = "Hello! I'm your AI Permit Assistant. I can help you summarize permits, check for overdue conditions, " +
		"or draft weekly digests. How can I help you today?"
	Apology = "I apologize, but I'm having trouble connecting to the AI service right now. " +
		"Please ensure the API Key is configured."
	EmptyReply = "I couldn't generate a response at this time."

	HistoryLimit   = 10
	DefaultSession = "default"

	// suggestionsBelow hides the suggested prompts once the user has started talking.
	suggestionsBelow = 3
)

var suggestions = []string{
	"Summarize permits with conditions due soon",
	"List all Overdue conditions",
	"Draft a weekly compliance digest",
	"Which permits are At Risk?",
}

func Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)

	return out
}

// Conversation is one chat transcript with at most one request in flight.
type Conversation struct {
	mu       sync.Mutex
	messages []entity.ChatMessage
	busy     bool
}

func NewConversation() *Conversation {
	return &Conversation{
		messages: []entity.ChatMessage{{Role: entity.ChatRoleModel, Content: Greeting}},
	}
}

func (c *Conversation) Messages() []entity.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]entity.ChatMessage, len(c.messages))
	copy(out, c.messages)

	return out
}

func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.busy
}

// Begin records the user message and marks the conversation busy. It returns
// the history to replay, taken before the new message was appended.
func (c *Conversation) Begin(text string) ([]entity.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message is empty", entity.ErrIncorrectRequestBody)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return nil, entity.ErrAssistantBusy
	}

	history := lastN(c.messages, HistoryLimit)

	c.messages = append(c.messages, entity.ChatMessage{Role: entity.ChatRoleUser, Content: text})
	c.busy = true

	return history, nil
}

// End appends the model reply and clears the busy flag.
func (c *Conversation) End(reply string) entity.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := entity.ChatMessage{Role: entity.ChatRoleModel, Content: reply}

	c.messages = append(c.messages, msg)
	c.busy = false

	return msg
}

func (c *Conversation) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return entity.ErrAssistantBusy
	}

	c.messages = []entity.ChatMessage{{Role: entity.ChatRoleModel, Content: Greeting}}

	return nil
}

func (c *Conversation) Transcript(session string) entity.Transcript {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := entity.Transcript{
		Session:  session,
		Messages: make([]entity.ChatMessage, len(c.messages)),
		Busy:     c.busy,
	}

	copy(t.Messages, c.messages)

	if len(c.messages) < suggestionsBelow {
		t.Suggestions = Suggestions()
	}

	return t
}

func lastN(messages []entity.ChatMessage, n int) []entity.ChatMessage {
	start := max(len(messages)-n, 0)

	out := make([]entity.ChatMessage, len(messages)-start)
	copy(out, messages[start:])

	return out
}

const (
	DefaultMaxSessions = 1000
	DefaultSessionTTL  = 24 * time.Hour
)

// Sessions keeps at most a fixed number of conversations and forgets the
// least recently used one, or one idle for longer than the TTL.
type Sessions struct {
	mu            sync.Mutex
	conversations *expirable.LRU[string, *Conversation]
}

// NewSessions caps the store at size conversations (DefaultMaxSessions when
// size is not positive). A non-positive ttl disables idle expiry.
func NewSessions(size int, ttl time.Duration) *Sessions {
	if size <= 0 {
		size = DefaultMaxSessions
	}

	return &Sessions{
		conversations: expirable.NewLRU[string, *Conversation](size, nil, ttl),
	}
}

// Get returns the conversation for id, creating it on first use. An empty id
// selects the default session.
func (s *Sessions) Get(id string) *Conversation {
	id = SessionID(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations.Get(id)
	if !ok {
		c = NewConversation()
	}

	// re-adding restarts the idle timer
	s.conversations.Add(id, c)

	return c
}

// Lookup returns the conversation for id without creating one.
func (s *Sessions) Lookup(id string) (*Conversation, bool) {
	return s.conversations.Get(SessionID(id))
}

func (s *Sessions) Len() int {
	return s.conversations.Len()
}

func SessionID(id string) string {
	if id == "" {
		return DefaultSession
	}

	return id
}
