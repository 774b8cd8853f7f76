package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xemob/coopnet/pkg/models"
)

// MessageRepository defines the interface for direct message data access.
type MessageRepository interface {
	// Create inserts the message. date is assigned by the database.
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	// ListForUser returns messages sent or received by userID, newest first.
	ListForUser(ctx context.Context, userID int64) ([]*models.Message, error)
	// UpdateText replaces the message body.
	UpdateText(ctx context.Context, msg *models.Message) error
}

type messageRepository struct{}

// NewMessageRepository creates a new message repository.
func NewMessageRepository() MessageRepository {
	return &messageRepository{}
}

const messageColumns = `id, user_id, recipient_id, message, date`

func scanMessage(row pgx.Row) (*models.Message, error) {
	var m models.Message
	if err := row.Scan(&m.ID, &m.UserID, &m.RecipientID, &m.Message, &m.Date); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO messages (user_id, recipient_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, date`

	err = scope.Conn.QueryRow(ctx, query, msg.UserID, msg.RecipientID, msg.Message).Scan(&msg.ID, &msg.Date)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", translateError(err))
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	msg, err := scanMessage(scope.Conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get message %d: %w", id, translateError(err))
	}
	return msg, nil
}

func (r *messageRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Message, error) {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + messageColumns + `
		FROM messages
		WHERE user_id = $1 OR recipient_id = $1
		ORDER BY date DESC, id DESC`

	rows, err := scope.Conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return messages, nil
}

func (r *messageRepository) UpdateText(ctx context.Context, msg *models.Message) error {
	scope, err := scopeFrom(ctx)
	if err != nil {
		return err
	}

	tag, err := scope.Conn.Exec(ctx, `UPDATE messages SET message = $1 WHERE id = $2`, msg.Message, msg.ID)
	if err != nil {
		return fmt.Errorf("failed to update message %d: %w", msg.ID, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update message %d: %w", msg.ID, translateError(pgx.ErrNoRows))
	}
	return nil
}

var _ MessageRepository = (*messageRepository)(nil)
