package realtime

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	zlog "github.com/rs/zerolog/log"

	"github.com/felicityfest/felicity-backend/internal/domain"
	"github.com/felicityfest/felicity-backend/internal/security"
)

// AccessChecker re-runs the same forum authorization used by the REST layer;
// joining a room never bypasses permission checks.
type AccessChecker interface {
	AccessContext(ctx context.Context, actor domain.Actor, eventID string) (*domain.AccessContext, error)
}

type Handler struct {
	hub      *Hub
	verifier security.AccessTokenVerifier
	access   AccessChecker

	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, verifier security.AccessTokenVerifier, access AccessChecker) *Handler {
	return &Handler{
		hub:      hub,
		verifier: verifier,
		access:   access,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS is enforced by the reverse proxy in front of this service.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

type clientFrame struct {
	Action  string `json:"action"` // join | leave
	EventID string `json:"event_id"`
}

type ackPayload struct {
	EventID string `json:"event_id"`
	Message string `json:"message,omitempty"`
}

// ServeHTTP upgrades the connection after the identity handshake. A missing
// or invalid token refuses the connection before any room join is possible.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	claims, err := h.verifier.VerifyAccessToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	actor := domain.Actor{ID: claims.UserID, Role: claims.Role}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zlog.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		conn:   conn,
		out:    make(chan Message, 64),
		done:   make(chan struct{}),
		rooms:  make(map[string]func()),
		hub:    h.hub,
		access: h.access,
		actor:  actor,
	}
	go c.writeLoop()
	c.readLoop(r.Context())
}

type client struct {
	conn *websocket.Conn
	out  chan Message
	done chan struct{}

	mu    sync.Mutex
	rooms map[string]func() // eventID -> leave

	hub    *Hub
	access AccessChecker
	actor  domain.Actor
}

func (c *client) readLoop(ctx context.Context) {
	defer c.close()
	for {
		var frame clientFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			return
		}
		switch frame.Action {
		case "join":
			c.join(ctx, frame.EventID)
		case "leave":
			c.leave(frame.EventID)
		default:
			c.send(Message{Type: "error", Payload: ackPayload{Message: "unknown action"}})
		}
	}
}

func (c *client) join(ctx context.Context, eventID string) {
	if eventID == "" {
		c.send(Message{Type: "error", Payload: ackPayload{Message: "event_id required"}})
		return
	}

	c.mu.Lock()
	_, already := c.rooms[eventID]
	c.mu.Unlock()
	if already {
		c.send(Message{Type: "joined", Payload: ackPayload{EventID: eventID}})
		return
	}

	if _, err := c.access.AccessContext(ctx, c.actor, eventID); err != nil {
		c.send(Message{Type: "error", Payload: ackPayload{EventID: eventID, Message: "access denied"}})
		return
	}

	ch, leave := c.hub.Join(RoomForEvent(eventID))
	c.mu.Lock()
	c.rooms[eventID] = leave
	c.mu.Unlock()

	go func() {
		for msg := range ch {
			select {
			case c.out <- msg:
			case <-c.done:
				return
			}
		}
	}()

	c.send(Message{Type: "joined", Payload: ackPayload{EventID: eventID}})
}

// leave is idempotent: leaving a room never joined is a no-op ack.
func (c *client) leave(eventID string) {
	c.mu.Lock()
	if fn, ok := c.rooms[eventID]; ok {
		delete(c.rooms, eventID)
		fn()
	}
	c.mu.Unlock()
	c.send(Message{Type: "left", Payload: ackPayload{EventID: eventID}})
}

func (c *client) send(msg Message) {
	select {
	case c.out <- msg:
	case <-c.done:
	}
}

func (c *client) writeLoop() {
	for {
		select {
		case msg := <-c.out:
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// close removes room membership silently on disconnect.
func (c *client) close() {
	c.mu.Lock()
	for id, fn := range c.rooms {
		delete(c.rooms, id)
		fn()
	}
	c.mu.Unlock()
	close(c.done)
	_ = c.conn.Close()
}
