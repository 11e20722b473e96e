package domain

import (
	"encoding/base64"
	"encoding/json"
)

// ChatRequest is the body of a chat call.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// DecodedChatRequest is a ChatRequest read from the wire together with
// what the lenient decoding had to discard.
type DecodedChatRequest struct {
	ChatRequest

	// DroppedAttachments counts attachments whose payload could not be used.
	DroppedAttachments int
}

type ChatReply struct {
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type wireMessage struct {
	Sender     any             `json:"sender"`
	Text       any             `json:"text"`
	Attachment json.RawMessage `json:"attachment"`
}

type wireAttachment struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// DecodeChatRequest parses a chat request body. The envelope is strict:
// it must be a JSON object whose "messages" field is a non-empty array,
// otherwise ErrInvalidInput is returned. Each element is lenient: a
// missing or non-string sender or text decodes to "", and an element
// that is not an object becomes an empty message.
func DecodeChatRequest(data []byte) (DecodedChatRequest, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return DecodedChatRequest{}, ErrInvalidInput
	}

	raw, ok := envelope["messages"]
	if !ok {
		return DecodedChatRequest{}, ErrInvalidInput
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return DecodedChatRequest{}, ErrInvalidInput
	}

	req := DecodedChatRequest{ChatRequest: ChatRequest{Messages: make([]ChatMessage, len(items))}}
	for i, item := range items {
		msg, dropped := decodeMessage(item)
		req.Messages[i] = msg
		if dropped {
			req.DroppedAttachments++
		}
	}
	return req, nil
}

func decodeMessage(item json.RawMessage) (ChatMessage, bool) {
	var wire wireMessage
	if err := json.Unmarshal(item, &wire); err != nil {
		return ChatMessage{}, false
	}

	msg := ChatMessage{}
	msg.Sender, _ = wire.Sender.(string)
	msg.Text, _ = wire.Text.(string)

	if len(wire.Attachment) == 0 || string(wire.Attachment) == "null" {
		return msg, false
	}

	var att wireAttachment
	if err := json.Unmarshal(wire.Attachment, &att); err != nil || att.MimeType == "" {
		return msg, true
	}
	payload, err := base64.StdEncoding.DecodeString(att.Data)
	if err != nil || len(payload) == 0 {
		return msg, true
	}
	msg.Attachment = &Attachment{MimeType: att.MimeType, Data: payload}
	return msg, false
}
