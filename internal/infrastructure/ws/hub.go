package ws

import (
	"log"

	"github.com/davrian/toolmart/internal/domain"
)

// Hub fans notification events out to connected stream clients. Events
// addressed to the staff recipient reach every client connected with a
// staff role.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	push       chan domain.NotificationEvent
	clients    map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		push:       make(chan domain.NotificationEvent, 256),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case cl := <-h.register:
			h.clients[cl] = true

		case cl := <-h.unregister:
			if _, ok := h.clients[cl]; ok {
				delete(h.clients, cl)
				close(cl.Message)
			}

		case event := <-h.push:
			msg := NewNotificationReceived(event)
			for cl := range h.clients {
				if !h.addressedTo(cl, event) {
					continue
				}
				select {
				case cl.Message <- msg:
				default:
					log.Printf("ws client %s too slow, dropping event %s", cl.RecipientID, event.ID)
				}
			}
		}
	}
}

func (h *Hub) addressedTo(cl *Client, event domain.NotificationEvent) bool {
	if event.RecipientID == domain.RecipientStaff {
		return cl.Staff
	}
	return cl.RecipientID == event.RecipientID
}

func (h *Hub) Register() chan<- *Client {
	return h.register
}

func (h *Hub) Unregister() chan<- *Client {
	return h.unregister
}

// Push makes Hub usable as the dispatcher's local stream and as the
// consumer's sink. Never blocks the caller.
func (h *Hub) Push(event domain.NotificationEvent) {
	select {
	case h.push <- event:
	default:
		log.Printf("ws hub backlog full, dropping event %s", event.ID)
	}
}
