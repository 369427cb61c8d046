package ws

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"kennedy-digital-arts/backend/internal/registry"
	"kennedy-digital-arts/backend/internal/service"
	"kennedy-digital-arts/backend/pkg/logger"
	"kennedy-digital-arts/backend/speech"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
	HandshakeTimeout: 10 * time.Second,
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
}

// Message is the envelope for every frame in both directions.
type Message struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
}

// Hub tracks connected clients and hands them the services a conversation
// needs. Each client runs its own read/write pumps; conversations are
// per-client, so the hub only manages membership.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client

	characters *registry.Registry
	chat       *service.ChatService
	speech     *service.SpeechService
	log        *logger.Logger

	mu sync.Mutex
}

// NewHub creates a hub wired to the chat and speech services.
func NewHub(characters *registry.Registry, chat *service.ChatService, speechSvc *service.SpeechService, log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		characters: characters,
		chat:       chat,
		speech:     speechSvc,
		log:        log,
	}
}

// Run processes registration events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.Info("websocket client registered",
				"client_id", client.ID,
				"character", client.CharacterSlug,
			)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.player.Stop()
				close(client.Send)
				h.log.Info("websocket client unregistered", "client_id", client.ID)
			}
			h.mu.Unlock()
		}
	}
}

// GetActiveConnections returns the IDs of currently connected clients.
func (h *Hub) GetActiveConnections() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]string, 0, len(h.clients))
	for client := range h.clients {
		ids = append(ids, client.ID)
	}
	return ids
}

// Client is one websocket connection. It holds at most one active playback
// session (via its player) and one in-flight generation at a time.
type Client struct {
	ID            string
	Conn          *websocket.Conn
	Send          chan []byte
	Hub           *Hub
	SessionID     string
	CharacterSlug string

	player     *speech.Player
	generating sync.Mutex
}

// ReadPump reads frames from the peer until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, messageData, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.Warn("websocket read error", "client_id", c.ID, "error", err.Error())
			}
			break
		}

		var message Message
		if err := json.Unmarshal(messageData, &message); err != nil {
			c.Hub.log.Warn("dropping unreadable frame", "client_id", c.ID, "error", err.Error())
			continue
		}

		go c.handleMessage(message)
	}
}

func (c *Client) handleMessage(message Message) {
	switch message.Type {
	case "user_message":
		c.handleUserMessage(message)
	case "speak":
		c.handleSpeak(message)
	case "stop_speech":
		// Idempotent: safe when nothing is playing.
		c.player.Stop()
	case "ping":
		c.sendMessage("pong", nil)
	default:
		c.Hub.log.Warn("unknown websocket message type", "client_id", c.ID, "type", message.Type)
	}
}

func (c *Client) handleUserMessage(message Message) {
	var content struct {
		Content string `json:"content"`
	}
	if !c.decodeContent(message, &content) {
		return
	}

	// One in-flight generation per client.
	c.generating.Lock()
	defer c.generating.Unlock()

	c.sendMessage("typing", map[string]interface{}{"is_typing": true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reply, err := c.Hub.chat.SendMessage(ctx, c.SessionID, c.CharacterSlug, content.Content)
	if err != nil {
		if errors.Is(err, service.ErrStaleResponse) {
			// Superseded by a newer turn; stay silent.
			return
		}
		c.Hub.log.Error("chat turn failed", "client_id", c.ID, "error", err.Error())
		c.sendErrorMessage("Failed to generate a response")
		return
	}

	c.sendMessage("ai_response", map[string]interface{}{
		"id":        reply.ExternalID,
		"content":   reply.Content,
		"timestamp": reply.Timestamp.Unix(),
	})
}

func (c *Client) handleSpeak(message Message) {
	var content struct {
		Text string `json:"text"`
	}
	if !c.decodeContent(message, &content) {
		return
	}

	character, err := c.Hub.characters.Get(c.CharacterSlug)
	if err != nil {
		c.sendErrorMessage("Character not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := c.player.Speak(ctx, content.Text, character.VoiceID, speech.Events{
		OnWordBoundary: func(index int) {
			if index == speech.NoHighlight {
				return
			}
			c.sendMessage("word_boundary", map[string]interface{}{"index": index})
		},
		OnComplete: func() {
			c.sendMessage("speech_complete", nil)
		},
	})
	if err != nil {
		if errors.Is(err, speech.ErrCancelled) {
			// Replaced by a newer speak request; stay silent.
			return
		}
		c.Hub.log.Error("speech playback failed", "client_id", c.ID, "error", err.Error())
		c.sendErrorMessage("Failed to synthesize speech")
		return
	}

	audio := session.Audio()
	c.sendMessage("audio", map[string]interface{}{
		"data":         base64.StdEncoding.EncodeToString(audio.Data),
		"content_type": audio.ContentType,
		"duration_ms":  audio.Duration.Milliseconds(),
	})
}

func (c *Client) decodeContent(message Message, out interface{}) bool {
	contentBytes, err := json.Marshal(message.Content)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(contentBytes, out); err != nil {
		c.Hub.log.Warn("malformed message content", "client_id", c.ID, "type", message.Type)
		return false
	}
	return true
}

func (c *Client) sendMessage(messageType string, content interface{}) {
	messageJSON, err := json.Marshal(Message{Type: messageType, Content: content})
	if err != nil {
		return
	}

	defer func() {
		// Send channel may close while a playback goroutine is still firing
		// boundary events.
		recover()
	}()
	c.Send <- messageJSON
}

func (c *Client) sendErrorMessage(errorText string) {
	c.sendMessage("error", map[string]string{"message": errorText})
}

// WritePump writes frames and pings until the send channel closes.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

			// Drain queued frames as separate websocket messages.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				extraMsg := <-c.Send
				if err := c.Conn.WriteMessage(websocket.TextMessage, extraMsg); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs upgrades an HTTP request to a websocket conversation with one
// character.
func ServeWs(hub *Hub, c *gin.Context) {
	characterSlug := c.Query("character")
	if characterSlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "character is required"})
		return
	}
	if _, err := hub.characters.Get(characterSlug); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return
	}

	clientID := c.Query("clientId")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clientId is required"})
		return
	}

	sessionID := c.Query("sessionId")
	if sessionID == "" {
		sessionID = fmt.Sprintf("session-%s-%s-%d", characterSlug, clientID, time.Now().Unix())
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.log.Error("websocket upgrade failed", "error", err.Error())
		return
	}
	conn.EnableWriteCompression(true)

	client := &Client{
		ID:            clientID,
		Conn:          conn,
		Send:          make(chan []byte, 256),
		Hub:           hub,
		SessionID:     sessionID,
		CharacterSlug: characterSlug,
		player:        hub.speech.NewPlayer(),
	}

	if history, err := hub.chat.History(sessionID); err == nil && len(history) > 0 {
		client.sendMessage("chat_history", map[string]interface{}{
			"session_id": sessionID,
			"messages":   history,
		})
	}

	client.Hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}
