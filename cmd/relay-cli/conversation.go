package main

import (
	"errors"

	"github.com/satriahrh/muse-relay/domain"
)

// frame is either a reply or an error from the relay.
type frame struct {
	Reply *string `json:"reply"`
	Error string  `json:"error"`
}

// conversation keeps the history locally; the relay is stateless, so the
// whole conversation is resent each turn.
type conversation struct {
	history []domain.ChatMessage
}

// ask records a user turn and returns the request to send.
func (c *conversation) ask(text string) domain.ChatRequest {
	c.history = append(c.history, domain.ChatMessage{Sender: domain.UserSender, Text: text})
	return domain.ChatRequest{Messages: c.history}
}

// settle applies the relay's answer to the pending user turn. A reply is
// appended as a bot turn; an error drops the pending user turn so the
// next request does not carry an unanswered message.
func (c *conversation) settle(resp frame) (string, error) {
	if resp.Reply == nil {
		if len(c.history) > 0 && c.history[len(c.history)-1].Sender == domain.UserSender {
			c.history = c.history[:len(c.history)-1]
		}
		if resp.Error == "" {
			return "", errors.New("relay sent neither reply nor error")
		}
		return "", errors.New(resp.Error)
	}

	c.history = append(c.history, domain.ChatMessage{Sender: domain.BotSender, Text: *resp.Reply})
	return *resp.Reply, nil
}
