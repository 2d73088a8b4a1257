package store

import (
	"context"
	"fmt"
	"strings"

	"bingelist/shared/go/models"
)

// CreateMessage stores a direct message.
func (s *Store) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	if strings.TrimSpace(message.Body) == "" {
		return models.Message{}, fmt.Errorf("message body is required")
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO messages (sender_id, recipient_id, body, is_read)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, is_read, created_at
	`, message.SenderID, message.RecipientID, message.Body).Scan(&message.ID, &message.IsRead, &message.CreatedAt)
	if err != nil {
		return models.Message{}, fmt.Errorf("insert message: %w", err)
	}

	return message, nil
}

// Conversation returns the full message history between two users, oldest
// first.
func (s *Store) Conversation(ctx context.Context, userID, otherID int64) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender_id, recipient_id, body, is_read, created_at
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at ASC, id ASC
	`, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("select conversation: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(&message.ID, &message.SenderID, &message.RecipientID, &message.Body, &message.IsRead, &message.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

// ConversationPartners returns the distinct users the given user has
// exchanged messages with.
func (s *Store) ConversationPartners(ctx context.Context, userID int64) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT u.id, u.username, COALESCE(u.email, ''), COALESCE(u.avatar, ''), u.created_at
		FROM users u
		JOIN messages m ON (m.sender_id = u.id AND m.recipient_id = $1)
		              OR (m.recipient_id = u.id AND m.sender_id = $1)
		ORDER BY u.username ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select conversation partners: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Avatar, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate partners: %w", err)
	}

	return users, nil
}
