package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lu-zhengda/mailbox/internal/domain"
)

const replyColumns = `id, sender, content, timestamp, is_starred, in_reply_to`

type replyRow struct {
	ID        string `db:"id"`
	Sender    string `db:"sender"`
	Content   string `db:"content"`
	Timestamp string `db:"timestamp"`
	IsStarred bool   `db:"is_starred"`
	InReplyTo string `db:"in_reply_to"`
}

func insertReply(ctx context.Context, tx *sqlx.Tx, messageID string, r domain.Reply) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO replies (id, message_id, position, sender, content, timestamp, is_starred, in_reply_to)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM replies WHERE message_id = ?), ?, ?, ?, ?, ?)`,
		r.ID, messageID, messageID, r.Sender, r.Content, r.Timestamp, r.IsStarred, r.InReplyTo,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reply: %w", err)
	}
	return nil
}

// AddReply appends a reply to the thread under messageID.
func (s *DB) AddReply(ctx context.Context, messageID string, draft domain.ReplyDraft) (domain.Reply, error) {
	if err := draft.Validate(); err != nil {
		return domain.Reply{}, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := getMessage(ctx, tx, messageID); err != nil {
		return domain.Reply{}, fmt.Errorf("failed to reply to %s: %w", messageID, err)
	}
	id, err := s.issueID(ctx, tx)
	if err != nil {
		return domain.Reply{}, err
	}
	r := draft.Materialize(id)
	if err := insertReply(ctx, tx, messageID, r); err != nil {
		return domain.Reply{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Reply{}, fmt.Errorf("failed to commit reply: %w", err)
	}
	return r, nil
}

// ListReplies returns the thread under messageID, oldest first.
func (s *DB) ListReplies(ctx context.Context, messageID string) ([]domain.Reply, error) {
	var rows []replyRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+replyColumns+` FROM replies WHERE message_id = ? ORDER BY position`,
		messageID); err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	replies := make([]domain.Reply, len(rows))
	for i, r := range rows {
		replies[i] = domain.Reply{
			ID:        r.ID,
			Sender:    r.Sender,
			Content:   r.Content,
			Timestamp: r.Timestamp,
			IsStarred: r.IsStarred,
			InReplyTo: r.InReplyTo,
		}
	}
	return replies, nil
}

func (s *DB) DeleteReply(ctx context.Context, messageID, replyID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM replies WHERE message_id = ? AND id = ?`, messageID, replyID); err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}
	return nil
}

func (s *DB) ToggleReplyStar(ctx context.Context, messageID, replyID string) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE replies SET is_starred = NOT is_starred WHERE message_id = ? AND id = ?`,
		messageID, replyID); err != nil {
		return fmt.Errorf("failed to toggle reply star: %w", err)
	}
	return nil
}
