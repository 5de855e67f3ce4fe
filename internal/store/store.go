package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/lu-zhengda/mailbox/internal/domain"
)

// Store holds the messages and labels of one application session.
//
// Returned slices and records are snapshots owned by the caller; changing
// them never changes the store. Operations on an unknown ID are silent
// no-ops unless documented otherwise.
type Store interface {
	// Messages
	ListByFolder(ctx context.Context, folder domain.Folder) ([]domain.Message, error)
	Search(ctx context.Context, folder domain.Folder, query string) ([]domain.Message, error)
	UnreadCount(ctx context.Context, folder domain.Folder) (int, error)
	GetMessage(ctx context.Context, id string) (*domain.Message, error)
	AddMessage(ctx context.Context, draft domain.Draft) (domain.Message, error)
	DeleteMessage(ctx context.Context, id string) error
	SetRead(ctx context.Context, id string, read bool) error
	ToggleStar(ctx context.Context, id string) error

	// Labels
	ListLabels(ctx context.Context) ([]domain.Label, error)
	AddLabel(ctx context.Context, name, color string) (domain.Label, error)
	DeleteLabel(ctx context.Context, id string) error
	ReplaceLabels(ctx context.Context, batch []domain.Label) ([]domain.Label, error)

	// Replies
	AddReply(ctx context.Context, messageID string, draft domain.ReplyDraft) (domain.Reply, error)
	ListReplies(ctx context.Context, messageID string) ([]domain.Reply, error)
	DeleteReply(ctx context.Context, messageID, replyID string) error
	ToggleReplyStar(ctx context.Context, messageID, replyID string) error

	// Seed appends fixture data behind anything already stored, keeping the
	// given IDs and order. An ID already in use fails the whole seed with
	// domain.ErrDuplicateID.
	Seed(ctx context.Context, f Fixtures) error

	// Lifecycle
	Close() error
}

// Fixtures is the data a store is pre-seeded with at initialization.
type Fixtures struct {
	Messages []domain.Message
	Labels   []domain.Label
	// Replies maps a message ID to its thread, oldest first.
	Replies map[string][]domain.Reply
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}
