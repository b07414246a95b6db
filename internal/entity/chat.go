package entity

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

type ReplyLine struct {
	Text   string `json:"text"`
	Bullet bool   `json:"bullet"`
}

type ChatReply struct {
	Message ChatMessage `json:"message"`
	Lines   []ReplyLine `json:"lines"`
	Failed  bool        `json:"failed"`
}

// ChatRequest is one assistant turn as handed to a completion provider.
type ChatRequest struct {
	SystemInstruction string
	History           []ChatMessage
	Message           string
}

type Transcript struct {
	Session     string        `json:"session"`
	Messages    []ChatMessage `json:"messages"`
	Busy        bool          `json:"busy"`
	Suggestions []string      `json:"suggestions,omitempty"`
}
