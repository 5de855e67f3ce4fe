package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lu-zhengda/mailbox/internal/domain"
)

const (
	originReceived = "received"
	originComposed = "composed"
)

const messageColumns = `id, sender, subject, preview, content, timestamp, is_read, is_starred,
	folder, origin, sender_email, to_addrs, cc_addrs, bcc_addrs`

type messageRow struct {
	ID          string `db:"id"`
	Sender      string `db:"sender"`
	Subject     string `db:"subject"`
	Preview     string `db:"preview"`
	Content     string `db:"content"`
	Timestamp   string `db:"timestamp"`
	IsRead      bool   `db:"is_read"`
	IsStarred   bool   `db:"is_starred"`
	Folder      string `db:"folder"`
	Origin      string `db:"origin"`
	SenderEmail string `db:"sender_email"`
	ToAddrs     string `db:"to_addrs"`
	CCAddrs     string `db:"cc_addrs"`
	BCCAddrs    string `db:"bcc_addrs"`
}

func (r *messageRow) toDomain(labels []string) domain.Message {
	m := domain.Message{
		ID:        r.ID,
		Sender:    r.Sender,
		Subject:   r.Subject,
		Preview:   r.Preview,
		Content:   r.Content,
		Timestamp: r.Timestamp,
		IsRead:    r.IsRead,
		IsStarred: r.IsStarred,
		Labels:    labels,
		Folder:    domain.Folder(r.Folder),
	}
	switch r.Origin {
	case originReceived:
		m.Origin = domain.Received{SenderEmail: r.SenderEmail}
	case originComposed:
		m.Origin = domain.Composed{To: r.ToAddrs, CC: r.CCAddrs, BCC: r.BCCAddrs}
	}
	return m
}

// ListByFolder returns the messages filed in folder, newest additions first.
func (s *DB) ListByFolder(ctx context.Context, folder domain.Folder) ([]domain.Message, error) {
	return listByFolder(ctx, s.db, folder)
}

func listByFolder(ctx context.Context, q sqlx.QueryerContext, folder domain.Folder) ([]domain.Message, error) {
	var rows []messageRow
	err := sqlx.SelectContext(ctx, q, &rows,
		`SELECT `+messageColumns+` FROM messages WHERE folder = ? ORDER BY position`,
		string(folder),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	labels, err := loadLabels(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	msgs := make([]domain.Message, len(rows))
	for i := range rows {
		msgs[i] = rows[i].toDomain(labels[rows[i].ID])
	}
	return msgs, nil
}

// loadLabels returns the label names of each message, in display order.
func loadLabels(ctx context.Context, q sqlx.QueryerContext, ids []string) (map[string][]string, error) {
	out := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(
		`SELECT message_id, label FROM message_labels WHERE message_id IN (?) ORDER BY message_id, position`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build label query: %w", err)
	}

	var rows []struct {
		MessageID string `db:"message_id"`
		Label     string `db:"label"`
	}
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load message labels: %w", err)
	}
	for _, r := range rows {
		out[r.MessageID] = append(out[r.MessageID], r.Label)
	}
	return out, nil
}

// Search filters ListByFolder in Go so both backends share one matcher.
func (s *DB) Search(ctx context.Context, folder domain.Folder, query string) ([]domain.Message, error) {
	msgs, err := s.ListByFolder(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	return domain.Filter(msgs, query), nil
}

func (s *DB) UnreadCount(ctx context.Context, folder domain.Folder) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM messages WHERE folder = ? AND is_read = FALSE`, string(folder))
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return n, nil
}

// GetMessage returns domain.ErrMessageNotFound when id is unknown.
func (s *DB) GetMessage(ctx context.Context, id string) (*domain.Message, error) {
	return getMessage(ctx, s.db, id)
}

func getMessage(ctx context.Context, q sqlx.QueryerContext, id string) (*domain.Message, error) {
	var row messageRow
	err := sqlx.GetContext(ctx, q, &row, `SELECT `+messageColumns+` FROM messages WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	labels, err := loadLabels(ctx, q, []string{id})
	if err != nil {
		return nil, err
	}
	m := row.toDomain(labels[id])
	return &m, nil
}

// AddMessage stores draft ahead of every existing message under a fresh ID.
func (s *DB) AddMessage(ctx context.Context, draft domain.Draft) (domain.Message, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.issueID(ctx, tx)
	if err != nil {
		return domain.Message{}, err
	}
	m := draft.Materialize(id)
	if err := insertMessage(ctx, tx, &m, `(SELECT COALESCE(MIN(position), 0) - 1 FROM messages)`); err != nil {
		return domain.Message{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Message{}, fmt.Errorf("failed to commit message: %w", err)
	}
	return m, nil
}

// insertMessage writes m and its labels. position is an SQL expression.
func insertMessage(ctx context.Context, tx *sqlx.Tx, m *domain.Message, position string) error {
	var origin, senderEmail, to, cc, bcc string
	switch o := m.Origin.(type) {
	case domain.Received:
		origin, senderEmail = originReceived, o.SenderEmail
	case domain.Composed:
		origin, to, cc, bcc = originComposed, o.To, o.CC, o.BCC
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO messages (id, position, sender, subject, preview, content, timestamp,
			is_read, is_starred, folder, origin, sender_email, to_addrs, cc_addrs, bcc_addrs)
		VALUES (?, `+position+`, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Sender, m.Subject, m.Preview, m.Content, m.Timestamp,
		m.IsRead, m.IsStarred, string(m.Folder), origin, senderEmail, to, cc, bcc,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	for i, label := range m.Labels {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO message_labels (message_id, position, label) VALUES (?, ?, ?)`,
			m.ID, i, label); err != nil {
			return fmt.Errorf("failed to insert message label: %w", err)
		}
	}
	return nil
}

// DeleteMessage removes the message; its labels and replies cascade.
func (s *DB) DeleteMessage(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (s *DB) SetRead(ctx context.Context, id string, read bool) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE messages SET is_read = ? WHERE id = ?`, read, id); err != nil {
		return fmt.Errorf("failed to update read state: %w", err)
	}
	return nil
}

func (s *DB) ToggleStar(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE messages SET is_starred = NOT is_starred WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to toggle star: %w", err)
	}
	return nil
}
