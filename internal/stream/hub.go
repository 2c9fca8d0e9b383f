// Package stream pushes freshly computed exposure snapshots to WebSocket
// subscribers. Clients subscribe per ticker; every new analysis result is
// broadcast as a JSON text message.
package stream

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Hub manages WebSocket connections and per-ticker subscriptions.
type Hub struct {
	clients    map[*Client]bool
	tickers    map[string]map[*Client]bool // ticker -> subscribers
	register   chan *Client
	unregister chan *Client
	broadcast  chan *tickerMessage
	mu         sync.RWMutex
	logger     *zap.Logger
}

type tickerMessage struct {
	ticker  string
	payload []byte
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		tickers:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *tickerMessage, 256),
		logger:     logger,
	}
}

// Run processes hub events. Call this in a goroutine.
// Returns when context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("stream hub shutting down")
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if h.tickers[client.ticker] == nil {
				h.tickers[client.ticker] = make(map[*Client]bool)
			}
			h.tickers[client.ticker][client] = true
			h.mu.Unlock()
			h.logger.Debug("stream client registered",
				zap.String("connID", client.connID),
				zap.String("ticker", client.ticker),
			)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				if subs, ok := h.tickers[client.ticker]; ok {
					delete(subs, client)
					if len(subs) == 0 {
						delete(h.tickers, client.ticker)
					}
				}
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("stream client unregistered",
				zap.String("connID", client.connID),
				zap.String("ticker", client.ticker),
			)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.tickers[msg.ticker] {
				select {
				case client.send <- msg.payload:
				default:
					// Buffer full, schedule disconnect
					go func(c *Client) {
						h.unregister <- c
					}(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// shutdown gracefully closes all client connections.
func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.tickers = make(map[string]map[*Client]bool)
}

// Broadcast sends a payload to every subscriber of ticker.
func (h *Hub) Broadcast(ticker string, payload []byte) {
	h.broadcast <- &tickerMessage{ticker: ticker, payload: payload}
}

// SubscriberCount returns the number of active subscribers for ticker.
func (h *Hub) SubscriberCount(ticker string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tickers[ticker])
}
