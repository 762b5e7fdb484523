package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/davrian/toolmart/internal/domain"
)

type publisherStub struct {
	publishErr error
	published  []domain.NotificationEvent
}

func (p *publisherStub) PublishNotification(_ context.Context, event *domain.NotificationEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.published = append(p.published, *event)
	return nil
}

type streamStub struct {
	pushed []domain.NotificationEvent
}

func (s *streamStub) Push(event domain.NotificationEvent) {
	s.pushed = append(s.pushed, event)
}

func rejectionResult() *Result {
	item := newBlog(domain.StatusRejected)
	item.RejectionReason = "duplicate content"
	return &Result{
		Updated: item,
		Audit:   &domain.AuditLogEntry{ID: "audit-1"},
		Intents: []NotificationIntent{{Kind: IntentOutcome, RecipientID: "writer-1"}},
	}
}

func TestDispatchRejectionNotifiesOwnerOnce(t *testing.T) {
	store := &notificationStoreStub{}
	publisher := &publisherStub{}
	stream := &streamStub{}
	d := NewDispatcher(store, publisher, stream)

	sent, err := d.DeriveAndSend(context.Background(), rejectionResult(), domain.Actor{ID: "mgr-1", Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sent) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(sent))
	}
	event := sent[0]
	if event.RecipientID != "writer-1" {
		t.Fatalf("expected the owner as recipient, got %q", event.RecipientID)
	}
	if event.Title != "Your blog was rejected" {
		t.Fatalf("unexpected title %q", event.Title)
	}
	if event.SourceAuditEntryID != "audit-1" {
		t.Fatalf("expected the audit link on the event, got %q", event.SourceAuditEntryID)
	}
	if len(store.events) != 1 || len(publisher.published) != 1 || len(stream.pushed) != 1 {
		t.Fatalf("expected the event stored, published and streamed, got %d/%d/%d",
			len(store.events), len(publisher.published), len(stream.pushed))
	}
}

func TestDispatchSuppressesSelfNotification(t *testing.T) {
	store := &notificationStoreStub{}
	d := NewDispatcher(store, nil, nil)

	// The owner rejected their own submission path never happens in practice,
	// but any intent addressed to the actor is dropped.
	sent, err := d.DeriveAndSend(context.Background(), rejectionResult(), domain.Actor{ID: "writer-1", Role: domain.RoleWriter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sent) != 0 {
		t.Fatalf("self-actions must never self-notify, got %d events", len(sent))
	}
	if len(store.events) != 0 {
		t.Fatalf("nothing should be stored, got %d", len(store.events))
	}
}

func TestDispatchSubmissionAddressesStaff(t *testing.T) {
	item := newBlog(domain.StatusPendingApproval)
	res := &Result{
		Updated: item,
		Audit:   &domain.AuditLogEntry{ID: "audit-2"},
		Intents: []NotificationIntent{{Kind: IntentSubmission, RecipientID: domain.RecipientStaff}},
	}

	store := &notificationStoreStub{}
	d := NewDispatcher(store, nil, nil)

	sent, err := d.DeriveAndSend(context.Background(), res, domain.Actor{ID: "writer-1", Role: domain.RoleWriter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sent) != 1 || sent[0].RecipientID != domain.RecipientStaff {
		t.Fatalf("expected one staff event, got %+v", sent)
	}
	if sent[0].Link != "/blogs/blog-1" {
		t.Fatalf("expected a link to the blog, got %q", sent[0].Link)
	}
}

func TestDispatchCollectsPartialFailures(t *testing.T) {
	store := &notificationStoreStub{insertErr: errors.New("store down")}
	publisher := &publisherStub{publishErr: errors.New("broker down")}
	stream := &streamStub{}
	d := NewDispatcher(store, publisher, stream)

	sent, err := d.DeriveAndSend(context.Background(), rejectionResult(), domain.Actor{ID: "mgr-1", Role: domain.RoleManager})
	if err == nil {
		t.Fatal("expected the collected errors to be reported")
	}
	// The local stream still gets the event; failures are per-collaborator.
	if len(stream.pushed) != 1 {
		t.Fatalf("expected the event on the local stream, got %d", len(stream.pushed))
	}
	if len(sent) != 1 {
		t.Fatalf("the event is still considered sent for the response, got %d", len(sent))
	}
}

func TestDispatchNoIntentsNoWork(t *testing.T) {
	d := NewDispatcher(&notificationStoreStub{}, nil, nil)

	sent, err := d.DeriveAndSend(context.Background(), &Result{Updated: newBlog(domain.StatusDraft)}, domain.Actor{ID: "mgr-1"})
	if err != nil || sent != nil {
		t.Fatalf("expected a no-op, got %v / %v", sent, err)
	}
}
