package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/satriahrh/muse-relay/utils/log"
)

const defaultServerURL = "ws://localhost:5000/ws/chat"

func main() {
	gotenv.Load()

	serverURL := os.Getenv("RELAY_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		log.With(zap.String("url", serverURL)).Fatal("Failed to connect to server", zap.Error(err))
	}
	defer conn.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		conn.Close()
		os.Exit(0)
	}()

	var convo conversation

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Chat with the relay (type 'exit' to quit):")
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		text := strings.TrimSpace(line)
		if text == "exit" {
			return
		}
		if text == "" {
			continue
		}

		if err := conn.WriteJSON(convo.ask(text)); err != nil {
			log.With().Error("Error sending message", zap.Error(err))
			return
		}

		var resp frame
		if err := conn.ReadJSON(&resp); err != nil {
			log.With().Error("Error reading reply", zap.Error(err))
			return
		}

		reply, err := convo.settle(resp)
		if err != nil {
			fmt.Printf("! %s\n", err)
			continue
		}
		fmt.Printf("bot: %s\n", reply)
	}
}
