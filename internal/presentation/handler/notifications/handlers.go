package notifications

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/davrian/toolmart/internal/domain"
	"github.com/davrian/toolmart/internal/infrastructure/json"
	"github.com/davrian/toolmart/internal/infrastructure/ws"
	"github.com/davrian/toolmart/internal/presentation/utils"
)

const defaultListLimit = 50

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy is enforced at the gateway
	},
}

type Handler struct {
	notifications domain.NotificationRepository
	hub           *ws.Hub
}

func NewHandler(notifications domain.NotificationRepository, hub *ws.Hub) *Handler {
	return &Handler{
		notifications: notifications,
		hub:           hub,
	}
}

// ListHandler godoc
// @Summary      List a recipient's notifications
// @Description  Returns the recipient's stored notification events, newest first
// @Tags         notifications
// @Produce      json
// @Param        recipientId path string true "Recipient ID, or 'staff' for the staff feed"
// @Success      200 {object} listResponse "Notifications"
// @Failure      400 {object} map[string]interface{} "Bad request - missing recipient ID"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /notifications/{recipientId} [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	recipientID := chi.URLParam(r, "recipientId")
	if recipientID == "" {
		json.WriteValidationError(w, errors.New("recipient ID is missing"))
		return
	}

	events, err := h.notifications.GetByRecipient(r.Context(), recipientID, defaultListLimit)
	if err != nil {
		log.Printf("Failed to load notifications for %s: %v", recipientID, err)
		json.WriteInternalError(w, err)
		return
	}

	mapped := make([]notificationResponse, 0, len(events))
	for _, e := range events {
		mapped = append(mapped, notificationResponse{
			ID:                 e.ID,
			RecipientID:        e.RecipientID,
			Title:              e.Title,
			Message:            e.Message,
			Link:               e.Link,
			SourceAuditEntryID: e.SourceAuditEntryID,
			CreatedAt:          e.CreatedAt,
			Read:               e.Read,
		})
	}

	json.Write(w, http.StatusOK, listResponse{Notifications: mapped})
}

// MarkReadHandler godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        recipientId path string true "Recipient ID"
// @Param        notificationId path string true "Notification ID"
// @Success      204 "Marked as read"
// @Failure      400 {object} map[string]interface{} "Bad request - missing notification ID"
// @Failure      404 {object} map[string]interface{} "Notification not found"
// @Router       /notifications/{recipientId}/{notificationId}/read [post]
func (h *Handler) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationId")
	if notificationID == "" {
		json.WriteValidationError(w, errors.New("notification ID is missing"))
		return
	}

	if err := h.notifications.MarkRead(r.Context(), notificationID); err != nil {
		json.WriteError(w, http.StatusNotFound, err, "Notification not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StreamHandler godoc
// @Summary      Stream notifications over WebSocket
// @Description  Establishes a WebSocket connection delivering the recipient's notification events as they happen. Staff actors also receive events addressed to the staff feed.
// @Tags         notifications
// @Produce      json
// @Param        recipientId path string true "Recipient ID"
// @Success      101 {object} map[string]interface{} "Switching Protocols - WebSocket connection established"
// @Failure      400 {object} map[string]interface{} "Bad request - missing recipient ID"
// @Failure      401 {object} map[string]interface{} "Unauthorized - missing actor headers"
// @Router       /notifications/{recipientId}/stream [get]
func (h *Handler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	recipientID := chi.URLParam(r, "recipientId")
	if recipientID == "" {
		json.WriteValidationError(w, errors.New("recipient ID is missing"))
		return
	}

	actor, err := utils.ActorFromHeaders(r)
	if err != nil {
		json.WriteError(w, http.StatusUnauthorized, err, "Missing or invalid actor identity")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed for recipient %s: %v", recipientID, err)
		return
	}

	// Subscribing to someone else's feed requires staff.
	if recipientID != actor.ID && !actor.Role.IsStaff() {
		_ = conn.WriteJSON(ws.NewAuthError("Cannot subscribe to another recipient's stream"))
		_ = conn.Close()
		return
	}

	client := ws.NewClient(conn, recipientID, actor.Role.IsStaff())
	h.hub.Register() <- client

	go client.WriteMessage()
	go client.ReadMessage(h.hub)

	log.Printf("Recipient %s connected to the notification stream", recipientID)
}
