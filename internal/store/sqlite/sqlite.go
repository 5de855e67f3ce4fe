// Package sqlite implements store.Store on a private in-memory SQLite
// database. Nothing is written to disk; the data lives as long as the DB.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/store"
	_ "github.com/mattn/go-sqlite3"
)

var _ store.Store = (*DB)(nil)

// DB wraps a sqlx connection to an in-memory SQLite database.
type DB struct {
	db    *sqlx.DB
	newID func() string
}

// New opens a fresh in-memory database and runs migrations.
func New() (*DB, error) {
	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" gets its own database, so pin one.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &DB{db: db, newID: store.NewID}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

func (s *DB) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection, discarding all data.
func (s *DB) Close() error {
	return s.db.Close()
}

// issueID reserves an ID that has never been used in this database.
func (s *DB) issueID(ctx context.Context, tx *sqlx.Tx) (string, error) {
	for {
		id := s.newID()
		if id == "" {
			continue
		}
		ok, err := reserveID(ctx, tx, id)
		if err != nil {
			return "", err
		}
		if ok {
			return id, nil
		}
	}
}

func reserveID(ctx context.Context, tx *sqlx.Tx, id string) (bool, error) {
	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO issued_ids (id) VALUES (?)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to reserve id: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to reserve id: %w", err)
	}
	return n == 1, nil
}

// Seed appends fixture messages, labels and replies in one transaction.
func (s *DB) Seed(ctx context.Context, f store.Fixtures) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	claim := func(id string) error {
		if id == "" {
			return fmt.Errorf("failed to seed: record without id")
		}
		ok, err := reserveID(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("failed to seed %s: %w", id, domain.ErrDuplicateID)
		}
		return nil
	}

	existing, err := listLabels(ctx, tx)
	if err != nil {
		return err
	}
	if err := domain.ValidateLabels(append(existing, f.Labels...)); err != nil {
		return fmt.Errorf("failed to seed labels: %w", err)
	}

	for i := range f.Messages {
		m := f.Messages[i]
		if err := claim(m.ID); err != nil {
			return err
		}
		if err := insertMessage(ctx, tx, &m, `(SELECT COALESCE(MAX(position), 0) + 1 FROM messages)`); err != nil {
			return err
		}
	}
	for _, l := range f.Labels {
		if err := claim(l.ID); err != nil {
			return err
		}
		if err := insertLabel(ctx, tx, l); err != nil {
			return err
		}
	}
	for msgID, thread := range f.Replies {
		if _, err := getMessage(ctx, tx, msgID); err != nil {
			return fmt.Errorf("failed to seed replies for %s: %w", msgID, err)
		}
		for _, r := range thread {
			if err := claim(r.ID); err != nil {
				return err
			}
			if err := insertReply(ctx, tx, msgID, r); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}
