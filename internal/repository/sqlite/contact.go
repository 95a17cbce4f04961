package sqlite

import (
	"context"
	"time"

	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/model"
	"github.com/sakif/portfolio-api/internal/repository"
)

var _ repository.ContactRepository = (*DB)(nil)

// CreateMessage appends a contact message and fills in its ID and created_at.
func (db *DB) CreateMessage(ctx context.Context, msg *model.ContactMessage) error {
	msg.CreatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, message, created_at)
		 VALUES (?, ?, ?, ?)`,
		msg.Name, msg.Email, msg.Message, msg.CreatedAt,
	)
	if err != nil {
		return apperror.Store("sqlite: inserting contact message", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperror.Store("sqlite: reading inserted message id", err)
	}
	msg.ID = id

	return nil
}

// ListMessages returns contact messages newest first.
func (db *DB) ListMessages(ctx context.Context, opts repository.ListOptions) ([]model.ContactMessage, error) {
	limit, offset := normalize(opts)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, email, message, created_at
		 FROM contact_messages
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, apperror.Store("sqlite: listing contact messages", err)
	}
	defer rows.Close()

	messages := make([]model.ContactMessage, 0, min(limit, 64))
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, apperror.Store("sqlite: scanning contact message row", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Store("sqlite: iterating contact messages", err)
	}

	return messages, nil
}

// CountMessages returns the number of stored contact messages.
func (db *DB) CountMessages(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&n); err != nil {
		return 0, apperror.Store("sqlite: counting contact messages", err)
	}
	return n, nil
}
