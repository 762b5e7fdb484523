package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type ContentKind string

const (
	KindBlog        ContentKind = "blog"
	KindReview      ContentKind = "review"
	KindTool        ContentKind = "tool"
	KindUserAccount ContentKind = "user_account"
)

func ParseContentKind(raw string) (ContentKind, error) {
	switch ContentKind(raw) {
	case KindBlog, KindReview, KindTool, KindUserAccount:
		return ContentKind(raw), nil
	}
	return "", fmt.Errorf("unknown content kind %q", raw)
}

type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusPublished       Status = "published"
	StatusRejected        Status = "rejected"
	StatusUnpublished     Status = "unpublished"

	// User accounts only.
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

type Action string

const (
	ActionSubmit     Action = "submit"
	ActionWithdraw   Action = "withdraw"
	ActionPublish    Action = "publish"
	ActionReject     Action = "reject"
	ActionUnpublish  Action = "unpublish"
	ActionTrash      Action = "trash"
	ActionRestore    Action = "restore"
	ActionRepost     Action = "repost"
	ActionDelete     Action = "delete"
	ActionBlock      Action = "block"
	ActionUnblock    Action = "unblock"
	ActionChangeRole Action = "change_role"
)

func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case ActionSubmit, ActionWithdraw, ActionPublish, ActionReject,
		ActionUnpublish, ActionTrash, ActionRestore, ActionRepost,
		ActionDelete, ActionBlock, ActionUnblock, ActionChangeRole:
		return Action(raw), nil
	}
	return "", fmt.Errorf("unknown action %q", raw)
}

var (
	ErrContentNotFound = errors.New("content item not found")
	ErrOwnerNotFound   = errors.New("owner account not found")
	// ErrConflict means the conditional update matched nothing: the item was
	// changed by a concurrent transition between read and write.
	ErrConflict = errors.New("content item was modified concurrently")
)

// StatusHistoryEntry records one lifecycle step. Entries are append-only;
// insertion order is the only ordering guarantee.
type StatusHistoryEntry struct {
	Status    Status    `bson:"status" json:"status"`
	ChangedBy ActorRef  `bson:"changed_by" json:"changedBy"`
	ChangedAt time.Time `bson:"changed_at" json:"changedAt"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
}

// ContentItem is the moderated entity, polymorphic over kinds. Kind-specific
// fields are flattened; unrelated ones stay zero-valued and are omitted from
// the stored document.
type ContentItem struct {
	ID      string      `bson:"_id" json:"id"`
	Kind    ContentKind `bson:"kind" json:"kind"`
	Status  Status      `bson:"status" json:"status"`
	OwnerID string      `bson:"owner_id" json:"ownerId"`

	// Title doubles as the blog title, tool name, review headline, or account
	// display name; it is what audit snapshots capture.
	Title string `bson:"title" json:"title"`

	// Tools.
	Category string `bson:"category,omitempty" json:"category,omitempty"`

	// Reviews.
	Rating       int  `bson:"rating,omitempty" json:"rating,omitempty"`
	RatingActive bool `bson:"rating_active,omitempty" json:"ratingActive,omitempty"`

	// User accounts.
	Role           Role `bson:"role,omitempty" json:"role,omitempty"`
	Blocked        bool `bson:"blocked,omitempty" json:"blocked,omitempty"`
	PublishedCount int  `bson:"published_count,omitempty" json:"publishedCount,omitempty"`

	// TrashedByWriter is the orthogonal soft-delete flag. It is layered on top
	// of Status so that restore can put the item back exactly where it was.
	TrashedByWriter bool `bson:"trashed_by_writer,omitempty" json:"trashedByWriter,omitempty"`

	RejectionReason string     `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
	PublishedAt     *time.Time `bson:"published_at,omitempty" json:"publishedAt,omitempty"`

	StatusHistory []StatusHistoryEntry `bson:"status_history" json:"statusHistory"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// WasEverPublished scans the history for a prior published entry. Restore
// relies on this to decide whether an unpublish was caused by trashing a live
// item.
func (c *ContentItem) WasEverPublished() bool {
	for _, e := range c.StatusHistory {
		if e.Status == StatusPublished {
			return true
		}
	}
	return c.Status == StatusPublished
}

func (c *ContentItem) Clone() *ContentItem {
	cp := *c
	cp.StatusHistory = make([]StatusHistoryEntry, len(c.StatusHistory))
	copy(cp.StatusHistory, c.StatusHistory)
	if c.PublishedAt != nil {
		t := *c.PublishedAt
		cp.PublishedAt = &t
	}
	return &cp
}

// TransitionPrecondition pins the document state the update is conditioned
// on. A mismatch at write time surfaces as ErrConflict.
type TransitionPrecondition struct {
	Status          Status
	TrashedByWriter bool
}

type ContentRepository interface {
	GetByID(ctx context.Context, kind ContentKind, id string) (*ContentItem, error)
	// ApplyTransition replaces the document with the updated item iff the
	// stored status and trash flag still match the precondition.
	ApplyTransition(ctx context.Context, item *ContentItem, pre TransitionPrecondition) error
	Delete(ctx context.Context, kind ContentKind, id string) error
	// AdjustPublishedCount applies the denormalized counter delta on the
	// owner's account document.
	AdjustPublishedCount(ctx context.Context, ownerID string, delta int) error
	EnsureIndexes(ctx context.Context) error
}
