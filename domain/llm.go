package domain

import "context"

// Llm abstracts any chat/LLM provider.
type Llm interface {
	// Generate sends the whole conversation and returns the model's reply.
	// The history is the entire context; no system prompt is added.
	Generate(ctx context.Context, history []ChatMessage) (string, error)
}

// ChatMessage is one conversation turn as supplied by the caller.
type ChatMessage struct {
	Sender     string      `json:"sender"`
	Text       string      `json:"text"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Attachment is an inline file sent along with a message. Data is
// base64 on the wire.
type Attachment struct {
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

type Role string

const (
	UserRole  Role = "user"
	ModelRole Role = "model"
)

const (
	UserSender = "user"
	BotSender  = "bot"
)

// Role maps the sender onto the provider role. Only "user" is a user
// turn; everything else, including an empty sender, is the model.
func (m ChatMessage) Role() Role {
	if m.Sender == UserSender {
		return UserRole
	}
	return ModelRole
}
