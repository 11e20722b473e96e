package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/satriahrh/muse-relay/adapters/hasher"
	"github.com/satriahrh/muse-relay/adapters/http"
	"github.com/satriahrh/muse-relay/adapters/llm"
	"github.com/satriahrh/muse-relay/adapters/websocket"
	"github.com/satriahrh/muse-relay/usecase"
	"github.com/satriahrh/muse-relay/utils/config"
	"github.com/satriahrh/muse-relay/utils/log"
)

func main() {
	gotenv.Load()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.With().Fatal("Loading config", zap.Error(err))
	}

	ctx := context.Background()
	geminiLlm, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		APIVersion: cfg.GeminiAPIVersion,
		BaseURL:    cfg.GeminiBaseURL,
	})
	if err != nil {
		log.With().Fatal("Creating Gemini client", zap.Error(err))
	}

	svc := usecase.NewChatService(geminiLlm, hasher.New())

	server := websocket.NewServer(svc)
	server.RunWebsocketHub()

	e := http.NewRouter(http.NewChatHandler(svc), server, cfg.BodyLimit)

	go func() {
		log.With(zap.String("port", cfg.Port), zap.String("model", cfg.GeminiModel)).Info("Starting server")
		log.With().Info("Available endpoints",
			zap.Strings("routes", []string{
				"GET  /          - Liveness",
				"POST /api/chat  - Relay a conversation",
				"GET  /ws/chat   - WebSocket chat",
			}))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.With().Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.With().Info("Shutting down")
	server.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.With().Error("Graceful shutdown failed", zap.Error(err))
	}
}
