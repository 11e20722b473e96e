package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriahrh/muse-relay/domain"
)

func strPtr(s string) *string { return &s }

func TestConversationAsk(t *testing.T) {
	var convo conversation

	req := convo.ask("Hello")
	assert.Equal(t, []domain.ChatMessage{{Sender: "user", Text: "Hello"}}, req.Messages)
}

func TestConversationSettle(t *testing.T) {
	prior := []domain.ChatMessage{
		{Sender: "user", Text: "Hi"},
		{Sender: "bot", Text: "Hello!"},
	}

	tests := []struct {
		name        string
		resp        frame
		wantReply   string
		wantErr     string
		wantHistory []domain.ChatMessage
	}{
		{
			name:      "reply is appended as bot turn",
			resp:      frame{Reply: strPtr("Fine, thanks")},
			wantReply: "Fine, thanks",
			wantHistory: append(append([]domain.ChatMessage{}, prior...),
				domain.ChatMessage{Sender: "user", Text: "How are you?"},
				domain.ChatMessage{Sender: "bot", Text: "Fine, thanks"}),
		},
		{
			name:        "empty reply still counts as a reply",
			resp:        frame{Reply: strPtr("")},
			wantReply:   "",
			wantHistory: append(append([]domain.ChatMessage{}, prior...), domain.ChatMessage{Sender: "user", Text: "How are you?"}, domain.ChatMessage{Sender: "bot"}),
		},
		{
			name:        "error drops the pending user turn",
			resp:        frame{Error: "quota exceeded"},
			wantErr:     "quota exceeded",
			wantHistory: prior,
		},
		{
			name:        "frame without reply or error is an error",
			resp:        frame{},
			wantErr:     "relay sent neither reply nor error",
			wantHistory: prior,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			convo := conversation{history: append([]domain.ChatMessage{}, prior...)}
			convo.ask("How are you?")

			reply, err := convo.settle(tc.resp)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantReply, reply)
			}
			assert.Equal(t, tc.wantHistory, convo.history)
		})
	}
}

func TestConversationRecoversAfterError(t *testing.T) {
	var convo conversation

	convo.ask("first")
	_, err := convo.settle(frame{Error: "upstream down"})
	require.Error(t, err)
	assert.Empty(t, convo.history)

	req := convo.ask("second")
	assert.Equal(t, []domain.ChatMessage{{Sender: "user", Text: "second"}}, req.Messages)
}
