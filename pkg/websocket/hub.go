package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/fasthttp/websocket"
)

// Eventos que el juego publica a la interfaz
const (
	EventState           = "state"
	EventRoundStarted    = "roundStarted"
	EventTick            = "tick"
	EventExpired         = "expired"
	EventAnswered        = "answered"
	EventHint            = "hint"
	EventQuestionChanged = "questionChanged"
	EventRoundFinished   = "roundFinished"
	EventRoundAbandoned  = "roundAbandoned"
)

type client struct {
	conn    *websocket.Conn
	initial func() []byte
}

// Hub reparte los eventos del juego entre las conexiones abiertas
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan client
	unregister chan *websocket.Conn
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan client),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
	}
}

// Run atiende registros y difusiones hasta que se llame a Stop
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c.conn] = true
			total := len(h.clients)
			h.mutex.Unlock()
			log.Printf("🔌 Cliente WebSocket conectado. Total: %d", total)
			// El estado inicial se arma ya registrado: todo evento posterior
			// se difunde después en este mismo loop.
			if c.initial != nil {
				if msg := c.initial(); msg != nil {
					if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						h.drop(c.conn)
					}
				}
			}

		case conn := <-h.unregister:
			h.drop(conn)

		case message := <-h.broadcast:
			h.mutex.RLock()
			var failed []*websocket.Conn
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					log.Printf("❌ Error enviando mensaje WebSocket: %v", err)
					failed = append(failed, conn)
				}
			}
			h.mutex.RUnlock()
			for _, conn := range failed {
				h.drop(conn)
			}

		case <-h.done:
			h.mutex.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mutex.Lock()
	_, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		conn.Close()
	}
	total := len(h.clients)
	h.mutex.Unlock()
	if ok {
		log.Printf("🔌 Cliente WebSocket desconectado. Total: %d", total)
	}
}

// Stop cierra todas las conexiones y termina Run
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Register agrega una conexión. initial, si no es nil, se llama dentro del
// loop una vez registrada la conexión y su resultado se le envía primero.
// No debe llamar a métodos bloqueantes del Hub.
func (h *Hub) Register(conn *websocket.Conn, initial func() []byte) {
	select {
	case h.register <- client{conn: conn, initial: initial}:
	case <-h.done:
		conn.Close()
	}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// ClientCount cantidad de conexiones abiertas
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Encode arma el sobre {type, data}
func Encode(msgType string, data interface{}) ([]byte, error) {
	return json.Marshal(Message{Type: msgType, Data: data})
}

// BroadcastMessage publica un evento. Si el buffer está lleno el evento se
// descarta para no frenar al juego.
func (h *Hub) BroadcastMessage(msgType string, data interface{}) {
	msgData, err := Encode(msgType, data)
	if err != nil {
		log.Printf("❌ Error serializando mensaje: %v", err)
		return
	}

	select {
	case h.broadcast <- msgData:
	case <-h.done:
	default:
		log.Printf("⚠️ Buffer WebSocket lleno, se descarta evento %s", msgType)
	}
}
