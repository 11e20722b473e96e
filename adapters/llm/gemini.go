package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/satriahrh/muse-relay/domain"
)

// ErrNoCandidates is returned when Gemini answers without any candidate.
var ErrNoCandidates = errors.New("gemini returned no candidates")

// ErrEmptyCandidate is returned when the first candidate carries no
// content, as when generation stops for safety or recitation.
var ErrEmptyCandidate = errors.New("gemini candidate has no content")

type GeminiConfig struct {
	APIKey     string
	Model      string
	APIVersion string
	// BaseURL overrides the Gemini endpoint; empty uses the default.
	BaseURL string
}

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	client, err := genai.NewClient(
		ctx,
		&genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
			HTTPOptions: genai.HTTPOptions{
				APIVersion: cfg.APIVersion,
				BaseURL:    cfg.BaseURL,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{client: client, model: cfg.Model}, nil
}

// Generate implements domain.Llm.
func (g *GeminiClient) Generate(ctx context.Context, history []domain.ChatMessage) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, ToContents(history), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", ErrNoCandidates
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: finish reason %s", ErrEmptyCandidate, candidate.FinishReason)
	}

	return resp.Text(), nil
}

// ToContents translates the conversation into Gemini contents, one per
// message and in the same order.
func ToContents(history []domain.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, len(history))
	for i, msg := range history {
		parts := []*genai.Part{
			{Text: msg.Text},
		}
		if msg.Attachment != nil {
			parts = append(parts, &genai.Part{
				InlineData: &genai.Blob{
					MIMEType: msg.Attachment.MimeType,
					Data:     msg.Attachment.Data,
				},
			})
		}
		contents[i] = &genai.Content{
			Role:  string(msg.Role()),
			Parts: parts,
		}
	}
	return contents
}
