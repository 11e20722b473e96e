package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/satriahrh/muse-relay/domain"
	"github.com/satriahrh/muse-relay/utils/log"
)

type ChatService struct {
	llm    domain.Llm
	hasher domain.Hasher
}

func NewChatService(gen domain.Llm, hasher domain.Hasher) *ChatService {
	return &ChatService{llm: gen, hasher: hasher}
}

// Reply relays the conversation to the model and returns its answer.
// An empty conversation yields domain.ErrInvalidInput; any provider
// failure comes back as *domain.ExternalServiceError. No retry is made.
func (s *ChatService) Reply(ctx context.Context, req domain.DecodedChatRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", domain.ErrInvalidInput
	}

	logger := log.WithCtx(ctx).With(
		zap.Int("messages", len(req.Messages)),
		zap.String("fingerprint", s.hasher.Hash(req.Messages)),
	)
	if req.DroppedAttachments > 0 {
		logger.Warn("Dropped unusable attachments", zap.Int("count", req.DroppedAttachments))
	}

	reply, err := s.llm.Generate(ctx, req.Messages)
	if err != nil {
		logger.Error("Error calling Gemini API", zap.Error(err))
		return "", &domain.ExternalServiceError{Err: err}
	}

	logger.Debug("Reply generated", zap.Int("reply_length", len(reply)))
	return reply, nil
}
