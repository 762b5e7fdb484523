package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/davrian/toolmart/internal/domain"
)

// EventPublisher pushes a notification event onto the message broker for the
// external delivery collaborator.
type EventPublisher interface {
	PublishNotification(ctx context.Context, event *domain.NotificationEvent) error
}

// EventStream fans an event out to connected live subscribers.
type EventStream interface {
	Push(event domain.NotificationEvent)
}

// Dispatcher turns transition intents into stored and published notification
// events. Everything here is best-effort: the facade logs dispatcher errors
// and never lets them touch the already-committed transition.
type Dispatcher struct {
	store     domain.NotificationRepository
	publisher EventPublisher
	stream    EventStream
}

func NewDispatcher(store domain.NotificationRepository, publisher EventPublisher, stream EventStream) *Dispatcher {
	return &Dispatcher{store: store, publisher: publisher, stream: stream}
}

// DeriveAndSend materializes the result's notification intents. Intents
// addressed to the acting user are dropped: self-actions never self-notify.
func (d *Dispatcher) DeriveAndSend(ctx context.Context, res *Result, actor domain.Actor) ([]domain.NotificationEvent, error) {
	if res == nil || res.Updated == nil || len(res.Intents) == 0 {
		return nil, nil
	}

	var (
		sent []domain.NotificationEvent
		errs []error
	)
	for _, intent := range res.Intents {
		if intent.RecipientID == actor.ID {
			continue
		}

		event := d.materialize(intent, res)
		if event == nil {
			continue
		}

		if d.store != nil {
			if err := d.store.Insert(ctx, event); err != nil {
				errs = append(errs, fmt.Errorf("store notification for %s: %w", event.RecipientID, err))
			}
		}
		if d.publisher != nil {
			if err := d.publisher.PublishNotification(ctx, event); err != nil {
				errs = append(errs, fmt.Errorf("publish notification for %s: %w", event.RecipientID, err))
			}
		}
		if d.stream != nil {
			d.stream.Push(*event)
		}
		sent = append(sent, *event)
	}

	return sent, errors.Join(errs...)
}

func (d *Dispatcher) materialize(intent NotificationIntent, res *Result) *domain.NotificationEvent {
	item := res.Updated
	noun := kindNoun(item.Kind)
	link := linkFor(item.Kind, item.ID)
	auditID := ""
	if res.Audit != nil {
		auditID = res.Audit.ID
	}

	switch intent.Kind {
	case IntentSubmission:
		return domain.NewNotificationEvent(
			intent.RecipientID,
			"Submission awaiting approval",
			fmt.Sprintf("%s %q was submitted for approval", noun, item.Title),
			link, auditID,
		)
	case IntentOutcome:
		if item.Status == domain.StatusPublished {
			return domain.NewNotificationEvent(
				intent.RecipientID,
				fmt.Sprintf("Your %s was published", noun),
				fmt.Sprintf("%s %q is now live", noun, item.Title),
				link, auditID,
			)
		}
		msg := fmt.Sprintf("%s %q was rejected", noun, item.Title)
		if item.RejectionReason != "" {
			msg = fmt.Sprintf("%s: %s", msg, item.RejectionReason)
		}
		return domain.NewNotificationEvent(
			intent.RecipientID,
			fmt.Sprintf("Your %s was rejected", noun),
			msg, link, auditID,
		)
	case IntentRestored:
		return domain.NewNotificationEvent(
			intent.RecipientID,
			"Trashed item restored",
			fmt.Sprintf("%s %q was restored by its owner", noun, item.Title),
			link, auditID,
		)
	}
	return nil
}

func linkFor(kind domain.ContentKind, id string) string {
	switch kind {
	case domain.KindBlog:
		return "/blogs/" + id
	case domain.KindReview:
		return "/reviews/" + id
	case domain.KindTool:
		return "/tools/" + id
	case domain.KindUserAccount:
		return "/users/" + id
	}
	return "/" + id
}
