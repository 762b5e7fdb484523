package moderation

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davrian/toolmart/internal/domain"
	"github.com/davrian/toolmart/internal/infrastructure/json"
	"github.com/davrian/toolmart/internal/infrastructure/validate"
	"github.com/davrian/toolmart/internal/moderation"
	"github.com/davrian/toolmart/internal/presentation/utils"
)

var (
	validateReason = validate.Field("reason", validate.MaxLength(2000))
	// Rejections must say why; the reason ends up on the item and the ledger.
	validateRejectReason = validate.Field("reason", validate.Compose(validate.Required(), validate.MaxLength(2000)))
	validateNewRole      = validate.Field("newRole", validate.OneOf("user", "writer", "manager", "admin"))
)

type Handler struct {
	service *moderation.Service
}

func NewHandler(service *moderation.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// ModerateHandler godoc
// @Summary      Apply a moderation action
// @Description  Authorizes, computes and persists one moderation action on an entity, then records it on the audit ledger and notifies affected users
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        kind path string true "Entity kind" Enums(blog, review, tool, user_account)
// @Param        id path string true "Entity ID"
// @Param        action path string true "Action" Enums(submit, withdraw, publish, reject, unpublish, trash, restore, repost, delete, block, unblock, change_role)
// @Param        request body moderateRequest false "Action parameters"
// @Success      200 {object} moderateResponse "Action applied"
// @Failure      400 {object} map[string]interface{} "Bad request - malformed kind, action or body"
// @Failure      401 {object} map[string]interface{} "Unauthorized - missing actor headers"
// @Failure      403 {object} map[string]interface{} "Forbidden - permission gate denied the action"
// @Failure      404 {object} map[string]interface{} "Entity not found"
// @Failure      409 {object} map[string]interface{} "Conflict - entity changed concurrently"
// @Failure      422 {object} map[string]interface{} "Unprocessable - transition not valid for current state"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /moderation/{kind}/{id}/{action} [post]
func (h *Handler) ModerateHandler(w http.ResponseWriter, r *http.Request) {
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

	action, err := domain.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	actor, err := utils.ActorFromHeaders(r)
	if err != nil {
		json.WriteError(w, http.StatusUnauthorized, err, "Missing or invalid actor identity")
		return
	}

	// The body is optional; most actions carry no parameters.
	var req moderateRequest
	if err := json.Read(r, &req); err != nil && !errors.Is(err, json.ErrEmptyBody) {
		json.WriteValidationError(w, err)
		return
	}

	reasonCheck := validateReason
	if action == domain.ActionReject {
		reasonCheck = validateRejectReason
	}
	if err := reasonCheck(req.Reason); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	cmd := moderation.Command{
		Kind:     kind,
		EntityID: entityID,
		Action:   action,
		Reason:   req.Reason,
	}
	if req.NewRole != "" {
		if err := validateNewRole(req.NewRole); err != nil {
			json.WriteValidationError(w, err)
			return
		}
		role, err := domain.ParseRole(req.NewRole)
		if err != nil {
			json.WriteValidationError(w, err)
			return
		}
		cmd.NewRole = role
	}

	outcome, err := h.service.Moderate(r.Context(), actor, cmd)
	if err != nil {
		writeModerationError(w, err)
		return
	}

	resp := moderateResponse{
		Deleted:          outcome.Deleted,
		AuditEntryID:     outcome.AuditEntryID,
		CoercedToPending: outcome.CoercedToPending,
		Notified:         len(outcome.Notified),
	}
	if !outcome.Deleted {
		resp.Item = mapItem(outcome.Item)
	}

	json.Write(w, http.StatusOK, resp)
}

func writeModerationError(w http.ResponseWriter, err error) {
	var authErr *moderation.AuthorizationError
	var valErr *moderation.ValidationError
	var persistErr *moderation.PersistenceError

	switch {
	case errors.As(err, &authErr):
		json.WriteErrorCode(w, http.StatusForbidden, string(authErr.Reason), authErr.Error())
	case errors.As(err, &valErr):
		json.WriteError(w, http.StatusUnprocessableEntity, err, valErr.Msg)
	case errors.Is(err, domain.ErrContentNotFound):
		json.WriteError(w, http.StatusNotFound, err, "Entity not found")
	case errors.As(err, &persistErr):
		if errors.Is(err, domain.ErrConflict) {
			json.WriteError(w, http.StatusConflict, err, "Entity was modified concurrently, retry the action")
			return
		}
		log.Printf("Persistence failure: %v", err)
		json.WriteInternalError(w, err)
	default:
		log.Printf("Moderation failure: %v", err)
		json.WriteInternalError(w, err)
	}
}

func mapItem(item *domain.ContentItem) *itemResponse {
	if item == nil {
		return nil
	}

	history := make([]historyEntryResponse, 0, len(item.StatusHistory))
	for _, e := range item.StatusHistory {
		history = append(history, historyEntryResponse{
			Status: string(e.Status),
			ChangedBy: actorResponse{
				ID:   e.ChangedBy.ID,
				Name: e.ChangedBy.Name,
				Role: string(e.ChangedBy.Role),
			},
			ChangedAt: e.ChangedAt,
			Reason:    e.Reason,
		})
	}

	return &itemResponse{
		ID:              item.ID,
		Kind:            string(item.Kind),
		Status:          string(item.Status),
		OwnerID:         item.OwnerID,
		Title:           item.Title,
		Category:        item.Category,
		Rating:          item.Rating,
		RatingActive:    item.RatingActive,
		Role:            string(item.Role),
		Blocked:         item.Blocked,
		PublishedCount:  item.PublishedCount,
		TrashedByWriter: item.TrashedByWriter,
		RejectionReason: item.RejectionReason,
		PublishedAt:     item.PublishedAt,
		StatusHistory:   history,
	}
}
