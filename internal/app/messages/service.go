package messages

import (
	"context"
	"fmt"
	"strings"

	"bingelist/shared/go/models"
)

// Store captures the persistence needs for messaging workflows.
type Store interface {
	CreateMessage(ctx context.Context, message models.Message) (models.Message, error)
	Conversation(ctx context.Context, userID, otherID int64) ([]models.Message, error)
	ConversationPartners(ctx context.Context, userID int64) ([]models.User, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
}

// Service coordinates direct messaging.
type Service interface {
	Send(ctx context.Context, senderID int64, recipientUsername, body string) (models.Message, error)
	Conversation(ctx context.Context, userID int64, otherUsername string) ([]models.Message, error)
	Inbox(ctx context.Context, userID int64) ([]models.User, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Send(ctx context.Context, senderID int64, recipientUsername, body string) (models.Message, error) {
	if err := ctx.Err(); err != nil {
		return models.Message{}, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return models.Message{}, fmt.Errorf("message body is required")
	}

	recipient, err := s.store.UserByUsername(ctx, recipientUsername)
	if err != nil {
		return models.Message{}, err
	}

	return s.store.CreateMessage(ctx, models.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Body:        body,
	})
}

func (s *service) Conversation(ctx context.Context, userID int64, otherUsername string) ([]models.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	other, err := s.store.UserByUsername(ctx, otherUsername)
	if err != nil {
		return nil, err
	}

	return s.store.Conversation(ctx, userID, other.ID)
}

// Inbox lists the distinct users the given user has exchanged messages with.
func (s *service) Inbox(ctx context.Context, userID int64) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ConversationPartners(ctx, userID)
}
