package realtime

import "sync"

// Message is the typed payload pushed to forum room subscribers.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func RoomForEvent(eventID string) string { return "forum:" + eventID }

// Hub fans messages out to the current subscribers of a room using
// per-subscriber buffered channels. Slow subscribers drop messages rather
// than block publishers; delivery is at-most-once with no replay.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[uint64]chan Message
	nextID uint64
	buffer int
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[string]map[uint64]chan Message),
		buffer: 32,
	}
}

// Join subscribes to a room and returns the message channel plus a leave
// function. Leave is idempotent; the channel is closed on leave or shutdown.
func (h *Hub) Join(room string) (<-chan Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Message, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	subs, ok := h.rooms[room]
	if !ok {
		subs = make(map[uint64]chan Message)
		h.rooms[room] = subs
	}
	subs[id] = ch

	leave := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.rooms[room]; ok {
			if sub, ok := subs[id]; ok {
				delete(subs, id)
				close(sub)
			}
			if len(subs) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	return ch, leave
}

// Broadcast delivers the message to every current subscriber of the room.
func (h *Hub) Broadcast(room string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.rooms[room] {
		select {
		case ch <- msg:
		default:
			// drop for this subscriber to avoid backpressure
		}
	}
}

// Shutdown closes all subscriber channels; subsequent joins get a closed
// channel immediately.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for room, subs := range h.rooms {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
		delete(h.rooms, room)
	}
}

// ForumFanout adapts the hub to the forum service's broadcaster port.
type ForumFanout struct {
	Hub *Hub
}

func (f ForumFanout) Broadcast(eventID, msgType string, payload any) {
	f.Hub.Broadcast(RoomForEvent(eventID), Message{Type: msgType, Payload: payload})
}
