package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/miklz/enrust/internal/service"
)

// Message is the envelope for WebSocket traffic in both directions.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	messageTypeMove     = "move"
	messageTypeUndo     = "undo"
	messageTypeBestMove = "bestmove"
	messageTypeInfo     = "info"
	messageTypeState    = "state"
	messageTypeError    = "error"
)

// WebSocketController streams game state over a WebSocket connection. Each
// connection is bound to one game; clients send move/undo/bestmove messages
// and receive state updates in reply.
type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{gameService: gameService}
}

// HandleConnection is called when a new WebSocket connection is established.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")

	// Open with the current state so the client can render immediately.
	state, err := wsc.gameService.GetState(gameID)
	if err != nil {
		wsc.sendError(c, err.Error())
		c.Close()
		return
	}
	wsc.sendJSON(c, messageTypeState, state)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("ws %s: read error: %v", gameID, err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(c, "malformed message")
			continue
		}
		if err := wsc.handleMessage(c, gameID, msg); err != nil {
			wsc.sendError(c, err.Error())
		}
	}
}

func (wsc *WebSocketController) handleMessage(c *websocket.Conn, gameID string, msg Message) error {
	switch msg.Type {
	case messageTypeMove:
		var payload struct {
			Move string `json:"move"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		state, err := wsc.gameService.ApplyMove(gameID, payload.Move)
		if err != nil {
			return err
		}
		wsc.sendJSON(c, messageTypeState, state)
		return nil

	case messageTypeUndo:
		state, err := wsc.gameService.UndoMove(gameID)
		if err != nil {
			return err
		}
		wsc.sendJSON(c, messageTypeState, state)
		return nil

	case messageTypeBestMove:
		var payload struct {
			Depth      int `json:"depth"`
			MoveTimeMs int `json:"movetime_ms"`
		}
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				return err
			}
		}
		// Stream each completed deepening iteration as an info message,
		// then the final result.
		result, err := wsc.gameService.BestMoveStream(gameID, payload.Depth, payload.MoveTimeMs,
			func(progress *service.SearchResult) {
				wsc.sendJSON(c, messageTypeInfo, progress)
			})
		if err != nil {
			return err
		}
		wsc.sendJSON(c, messageTypeBestMove, result)
		return nil

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendJSON(c *websocket.Conn, msgType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ws marshal error: %v", err)
		return
	}
	if err := c.WriteJSON(Message{Type: msgType, Payload: data}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, _ := json.Marshal(errorPayload{Error: errorMsg})
	if err := c.WriteJSON(Message{Type: messageTypeError, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

type errorPayload struct {
	Error string `json:"error"`
}
