package moderation

import (
	"context"

	"github.com/davrian/toolmart/internal/domain"
	"github.com/davrian/toolmart/internal/infrastructure/logging"
)

// Metrics receives the pipeline's counters. *metrics.Moderation satisfies it.
type Metrics interface {
	ObserveAction(kind, action, outcome string)
	ObserveAuditWrite(ok bool)
	ObserveDispatchError()
}

// Command is one moderation request as seen by the facade.
type Command struct {
	Kind     domain.ContentKind
	EntityID string
	Action   domain.Action
	Reason   string
	NewRole  domain.Role
}

// Outcome reports what steps 1-3 decided. Audit and notification degradation
// never shows up here; operators find it in the logs and counters.
type Outcome struct {
	Item             *domain.ContentItem
	Deleted          bool
	AuditEntryID     string
	CoercedToPending bool
	Notified         []domain.NotificationEvent
}

// Service is the moderation facade: the only entry point the thin transport
// layer calls. Step order is fixed: authorize, compute, persist (all hard
// failures), then audit append and notification dispatch (soft failures).
type Service struct {
	content    domain.ContentRepository
	ledger     *Ledger
	dispatcher *Dispatcher
	logger     logging.Logger
	metrics    Metrics
}

func NewService(
	content domain.ContentRepository,
	ledger *Ledger,
	dispatcher *Dispatcher,
	logger logging.Logger,
	metrics Metrics,
) *Service {
	return &Service{
		content:    content,
		ledger:     ledger,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

func (s *Service) Moderate(ctx context.Context, actor domain.Actor, cmd Command) (*Outcome, error) {
	item, err := s.content.GetByID(ctx, cmd.Kind, cmd.EntityID)
	if err != nil {
		return nil, err
	}

	decision := Authorize(GateRequest{
		Actor:         actor,
		Kind:          cmd.Kind,
		CurrentStatus: item.Status,
		Action:        cmd.Action,
		IsOwner:       item.OwnerID == actor.ID,
		TargetID:      item.ID,
		TargetRole:    item.Role,
	})
	if !decision.Allowed {
		s.observe(cmd, "denied")
		return nil, &AuthorizationError{Reason: decision.Reason, Kind: cmd.Kind, Action: cmd.Action}
	}

	engine, err := EngineFor(cmd.Kind)
	if err != nil {
		return nil, err
	}

	res, err := engine.Apply(item, Request{
		Actor:   actor,
		Action:  cmd.Action,
		Reason:  cmd.Reason,
		NewRole: cmd.NewRole,
	})
	if err != nil {
		s.observe(cmd, "invalid")
		return nil, err
	}

	if res.Deleted {
		if err := s.content.Delete(ctx, cmd.Kind, cmd.EntityID); err != nil {
			s.observe(cmd, "persist_failed")
			return nil, &PersistenceError{Op: "delete", Err: err}
		}
	} else {
		if err := s.content.ApplyTransition(ctx, res.Updated, res.Precondition); err != nil {
			s.observe(cmd, "persist_failed")
			return nil, &PersistenceError{Op: "update", Err: err}
		}
	}

	// The entity write is committed; everything below degrades to log lines.

	if res.PublishedDelta != 0 {
		if err := s.content.AdjustPublishedCount(ctx, item.OwnerID, res.PublishedDelta); err != nil {
			s.warn("published count adjustment failed", cmd, actor, err)
		}
	}

	if _, err := s.ledger.Append(ctx, res.Audit); err != nil {
		s.warn("audit append failed", cmd, actor, err)
		s.observeAuditWrite(false)
	} else {
		s.observeAuditWrite(true)
	}

	sent, err := s.dispatcher.DeriveAndSend(ctx, res, actor)
	if err != nil {
		s.warn("notification dispatch failed", cmd, actor, err)
		s.observeDispatchError()
	}

	s.observe(cmd, "ok")

	return &Outcome{
		Item:             res.Updated,
		Deleted:          res.Deleted,
		AuditEntryID:     res.Audit.ID,
		CoercedToPending: res.CoercedToPending,
		Notified:         sent,
	}, nil
}

func (s *Service) warn(msg string, cmd Command, actor domain.Actor, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Error(logging.Moderation, logging.SideEffect, msg, map[logging.ExtraKey]any{
		logging.EntityKind:   string(cmd.Kind),
		logging.EntityID:     cmd.EntityID,
		logging.ActionKey:    string(cmd.Action),
		logging.ActorID:      actor.ID,
		logging.ErrorMessage: err.Error(),
	})
}

func (s *Service) observe(cmd Command, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveAction(string(cmd.Kind), string(cmd.Action), outcome)
}

func (s *Service) observeAuditWrite(ok bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveAuditWrite(ok)
}

func (s *Service) observeDispatchError() {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveDispatchError()
}
