// Package monitoring pushes live prediction events to dashboard clients.
package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// PredictionEvent is broadcast to connected dashboards after each predict call.
type PredictionEvent struct {
	Target    string    `json:"target"`
	Risk      float64   `json:"risk"`
	Mode      string    `json:"mode"`
	Timestamp time.Time `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	id   string
}

// PredictionFeed fans prediction events out to websocket subscribers.
type PredictionFeed struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
	ctx        context.Context
	cancel     context.CancelFunc
	logger     *zap.SugaredLogger
}

// NewPredictionFeed creates a feed; call Start before serving connections.
func NewPredictionFeed(logger *zap.SugaredLogger) *PredictionFeed {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &PredictionFeed{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Start runs the fan-out loop until Stop is called.
func (f *PredictionFeed) Start() {
	defer f.logger.Info("prediction feed stopped")

	for {
		select {
		case c := <-f.register:
			f.mu.Lock()
			f.clients[c] = true
			f.mu.Unlock()
			f.logger.Infof("dashboard client connected: %s (total: %d)", c.id, len(f.clients))

		case c := <-f.unregister:
			f.mu.Lock()
			if _, ok := f.clients[c]; ok {
				delete(f.clients, c)
				close(c.send)
			}
			f.mu.Unlock()
			f.logger.Infof("dashboard client disconnected: %s (total: %d)", c.id, len(f.clients))

		case message := <-f.broadcast:
			f.mu.Lock()
			for c := range f.clients {
				select {
				case c.send <- message:
				default:
					close(c.send)
					delete(f.clients, c)
				}
			}
			f.mu.Unlock()

		case <-f.ctx.Done():
			f.mu.Lock()
			for c := range f.clients {
				close(c.send)
				delete(f.clients, c)
			}
			f.mu.Unlock()
			return
		}
	}
}

// Stop shuts the feed down and disconnects all clients.
func (f *PredictionFeed) Stop() {
	f.cancel()
}

// Publish broadcasts an event, dropping it if the queue is full.
func (f *PredictionFeed) Publish(event PredictionEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	message, err := json.Marshal(event)
	if err != nil {
		return err
	}

	select {
	case f.broadcast <- message:
	default:
		f.logger.Warn("prediction feed queue is full, dropping event")
	}
	return nil
}

// HandleWebSocket upgrades an HTTP request into a feed subscription.
func (f *PredictionFeed) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, 256),
		id:   time.Now().Format("20060102150405.000000"),
	}

	f.register <- c

	go c.writePump(f)
	go c.readPump(f)
}

func (c *client) writePump(f *PredictionFeed) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				f.logger.Debugf("websocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) readPump(f *PredictionFeed) {
	defer func() {
		f.unregister <- c
		c.conn.Close()
	}()

	// Subscribers do not send anything meaningful; drain until disconnect.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				f.logger.Debugf("websocket error: %v", err)
			}
			break
		}
	}
}
