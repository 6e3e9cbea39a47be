package handlers

import (
	"log"

	"github.com/SBertone10/prog1-equipo-0X/pkg/services"
	websocketHub "github.com/SBertone10/prog1-equipo-0X/pkg/websocket"
	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
)

// EventHandler conecta la interfaz con los eventos del juego
type EventHandler struct {
	game *services.GameService
	hub  *websocketHub.Hub
}

func NewEventHandler(game *services.GameService, hub *websocketHub.Hub) *EventHandler {
	return &EventHandler{
		game: game,
		hub:  hub,
	}
}

func (h *EventHandler) currentState() []byte {
	snap, err := h.game.Current()
	if err != nil {
		return nil
	}
	data, err := websocketHub.Encode(websocketHub.EventState, snap)
	if err != nil {
		log.Printf("❌ Error serializando estado: %v", err)
		return nil
	}
	return data
}

var upgrader = websocket.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true // Permitir conexiones desde cualquier origen en desarrollo
	},
}

// HandleWebSocket maneja las conexiones WebSocket
func (h *EventHandler) HandleWebSocket(ctx *fasthttp.RequestCtx) {
	err := upgrader.Upgrade(ctx, func(ws *websocket.Conn) {
		// Enviar el estado de la ronda al conectarse, si hay una
		h.hub.Register(ws, h.currentState)
		defer h.hub.Unregister(ws)

		// Escuchar mensajes del cliente solo para detectar el cierre
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
	})

	if err != nil {
		log.Printf("❌ Error upgrading to WebSocket: %v", err)
	}
}
