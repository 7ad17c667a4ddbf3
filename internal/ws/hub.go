package ws

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type publication struct {
	chatID  int64
	payload []byte
}

// Hub fans out chat events to the websocket clients subscribed to each chat.
type Hub struct {
	rooms      map[int64]map[*Client]struct{}
	publish    chan publication
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		rooms:      make(map[int64]map[*Client]struct{}),
		publish:    make(chan publication, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

// Run serves registrations and publications until ctx is done, then closes
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for chatID, room := range h.rooms {
				for c := range room {
					close(c.send)
				}
				delete(h.rooms, chatID)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			room, ok := h.rooms[client.chatID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[client.chatID] = room
			}
			room[client] = struct{}{}
			total := len(room)
			h.mutex.Unlock()
			h.logger.Debug("ws client connected", zap.Int64("chat_id", client.chatID), zap.Int("room_clients", total))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case p := <-h.publish:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.rooms[p.chatID]))
			for c := range h.rooms[p.chatID] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- p.payload:
				default:
					h.remove(client)
				}
			}
			h.logger.Debug("ws publish", zap.Int64("chat_id", p.chatID), zap.Int("clients", len(snapshot)))
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	room, ok := h.rooms[client.chatID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.chatID)
	}
	h.logger.Debug("ws client disconnected", zap.Int64("chat_id", client.chatID), zap.Int("room_clients", len(room)))
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Publish queues payload for every subscriber of chatID. It never blocks;
// a full queue drops the event.
func (h *Hub) Publish(chatID int64, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.publish <- publication{chatID: chatID, payload: payload}:
	default:
		h.logger.Warn("ws publish dropped", zap.Int64("chat_id", chatID), zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount(chatID int64) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[chatID])
}
