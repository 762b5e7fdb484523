package audit

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/davrian/toolmart/internal/domain"
	"github.com/davrian/toolmart/internal/infrastructure/json"
	"github.com/davrian/toolmart/internal/moderation"
)

type Handler struct {
	ledger     *moderation.Ledger
	trailLimit int
}

func NewHandler(ledger *moderation.Ledger, trailLimit int) *Handler {
	return &Handler{
		ledger:     ledger,
		trailLimit: trailLimit,
	}
}

// GetEntityTrailHandler godoc
// @Summary      Get an entity's audit trail
// @Description  Returns the recorded moderation history of one entity, newest first, including entries for entities that have since been deleted
// @Tags         audit
// @Produce      json
// @Param        kind path string true "Entity kind" Enums(blog, review, tool, user_account)
// @Param        id path string true "Entity ID"
// @Success      200 {object} trailResponse "Audit trail"
// @Failure      400 {object} map[string]interface{} "Bad request - malformed kind"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /audit/{kind}/{id} [get]
func (h *Handler) GetEntityTrailHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseContentKind(chi.URLParam(r, "kind"))
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	entityID := chi.URLParam(r, "id")
	if entityID == "" {
		json.WriteValidationError(w, errors.New("entity ID is missing"))
		return
	}

	entries, err := h.ledger.EntityTrail(r.Context(), kind, entityID, h.trailLimit)
	if err != nil {
		log.Printf("Failed to load entity trail for %s/%s: %v", kind, entityID, err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, h.mapTrail(r, entries))
}

// GetActorTrailHandler godoc
// @Summary      Get an actor's audit trail
// @Description  Returns every recorded action performed by one actor, newest first, optionally restricted to entries at or after a given time
// @Tags         audit
// @Produce      json
// @Param        actorId path string true "Actor ID"
// @Param        since query string false "RFC3339 lower bound on entry timestamps"
// @Success      200 {object} trailResponse "Audit trail"
// @Failure      400 {object} map[string]interface{} "Bad request - malformed since parameter"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /audit/actors/{actorId} [get]
func (h *Handler) GetActorTrailHandler(w http.ResponseWriter, r *http.Request) {
	actorID := chi.URLParam(r, "actorId")
	if actorID == "" {
		json.WriteValidationError(w, errors.New("actor ID is missing"))
		return
	}

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			json.WriteValidationError(w, errors.New("since must be an RFC3339 timestamp"))
			return
		}
		since = parsed
	}

	entries, err := h.ledger.ActorTrail(r.Context(), actorID, since)
	if err != nil {
		log.Printf("Failed to load actor trail for %s: %v", actorID, err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, h.mapTrail(r, entries))
}

func (h *Handler) mapTrail(r *http.Request, entries []domain.AuditLogEntry) trailResponse {
	mapped := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		changes := make([]fieldChangeResponse, 0, len(entry.Changes))
		for _, c := range entry.Changes {
			changes = append(changes, fieldChangeResponse{
				Field:    c.Field,
				OldValue: c.OldValue,
				NewValue: c.NewValue,
			})
		}

		mapped = append(mapped, entryResponse{
			ID:         entry.ID,
			Timestamp:  entry.Timestamp,
			EntityKind: string(entry.EntityKind),
			EntityID:   entry.EntityID,
			Action:     string(entry.Action),
			PerformedBy: actorResponse{
				ID:   entry.PerformedBy.ID,
				Name: entry.PerformedBy.Name,
				Role: string(entry.PerformedBy.Role),
			},
			Changes:     changes,
			Reason:      entry.Reason,
			Description: h.ledger.Describe(r.Context(), entry),
		})
	}

	return trailResponse{Entries: mapped}
}
