package ws

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// connWrapper serializes writes; gorilla allows only one concurrent writer.
type connWrapper struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newConnWrapper(conn *websocket.Conn) *connWrapper {
	return &connWrapper{conn: conn}
}

func (w *connWrapper) WriteJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

func (w *connWrapper) Close() error {
	return w.conn.Close()
}

type Client struct {
	conn        *connWrapper
	Message     chan *WSMessage
	RecipientID string `json:"recipientId"`
	Staff       bool   `json:"staff"`
}

func NewClient(conn *websocket.Conn, recipientID string, staff bool) *Client {
	return &Client{
		conn:        newConnWrapper(conn),
		Message:     make(chan *WSMessage, 64), // buffered to avoid dead-locks on slow clients
		RecipientID: recipientID,
		Staff:       staff,
	}
}

// ReadMessage drains the connection; the stream is server-push only, so
// inbound frames are discarded but reads detect disconnects.
func (c *Client) ReadMessage(hub *Hub) {
	defer func() {
		hub.Unregister() <- c
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error (recipient %s): %v", c.RecipientID, err)
			}
			break
		}
	}
}

func (c *Client) WriteMessage() {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.Message {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Printf("ws write error (recipient %s): %v", c.RecipientID, err)
			break
		}
	}
}
