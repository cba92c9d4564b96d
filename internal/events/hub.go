package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const sendBuffer = 64

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Hub держит подписчиков и рассылает им события
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	log        Logger
	now        func() time.Time
}

// NewHub создает hub. Его нужно запустить через Run
func NewHub(log Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
		now:        time.Now,
	}
}

// Run основной цикл hub до отмены ctx. При остановке закрывает всех подписчиков
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("Events: subscriber connected (total: %d)", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("Events: subscriber disconnected (total: %d)", total)

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Подписчик не успевает читать
					close(client.send)
					delete(h.clients, client)
					h.log.Warn("Events: dropping slow subscriber")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish рассылает событие всем подписчикам. Не блокируется
func (h *Hub) Publish(eventType string, data interface{}) {
	message, err := json.Marshal(Event{
		Type:      eventType,
		Data:      data,
		Timestamp: h.now().UTC(),
	})
	if err != nil {
		h.log.Error("Events: failed to encode %s event: %v", eventType, err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		h.log.Warn("Events: broadcast channel full, dropping %s event", eventType)
	}
}

// Register добавляет подписчика. Возвращает false, если hub остановлен
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister удаляет подписчика
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount возвращает число подписчиков
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Client подписчик hub
type Client struct {
	send chan []byte
}

// NewClient создает подписчика с буфером исходящих сообщений
func NewClient() *Client {
	return &Client{send: make(chan []byte, sendBuffer)}
}

// Send канал исходящих сообщений. Закрывается, когда hub отключает подписчика
func (c *Client) Send() <-chan []byte {
	return c.send
}
