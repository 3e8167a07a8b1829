package handlers

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/aavashbaral/stock-market-tracker/internal/models"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins (for development and demo)
	},
}

// PriceHub fans price updates out to all connected websocket clients.
type PriceHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewPriceHub creates an empty hub
func NewPriceHub() *PriceHub {
	return &PriceHub{
		conns: make(map[*websocket.Conn]bool),
	}
}

// HandleWS handles GET /ws/prices - subscribes the client to price updates
func (h *PriceHub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	log.Println("Client connected to price stream")

	// Drain the connection until the client goes away
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends a price update to every subscriber. Clients that fail
// to accept the write are dropped.
func (h *PriceHub) Broadcast(update models.PriceUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(update); err != nil {
			log.Println("WebSocket write error:", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *PriceHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}
