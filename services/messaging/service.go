package messaging

import (
	"context"
	"errors"
	"fmt"

	messagingRepo "github.com/msutyak/careconnect/database/repository/messaging"
	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotParticipant = errors.New("profile is not a participant in this conversation")
	ErrEmptyMessage   = errors.New("message content is empty")
)

const defaultMessagePage = 50

// ConversationView pairs a conversation with its unread count for list views.
type ConversationView struct {
	models.Conversation
	UnreadCount int64 `json:"unreadCount"`
}

// MessagingService handles direct messages between recipients and caregivers.
type MessagingService interface {
	StartConversation(ctx context.Context, profileID, otherProfileID string) (*models.Conversation, error)
	ListConversations(ctx context.Context, profileID string) ([]ConversationView, error)
	Send(ctx context.Context, profileID, conversationID, content, imageURL string) (*models.Message, error)
	ListMessages(ctx context.Context, profileID, conversationID string, limit int64) ([]models.Message, error)
	MarkRead(ctx context.Context, profileID, conversationID string) error
}

// DefaultMessagingService is the production MessagingService.
type DefaultMessagingService struct {
	Repo          messagingRepo.MessagingRepository
	Notifications notification.NotificationService
	Logger        *zap.Logger
}

func (s *DefaultMessagingService) StartConversation(ctx context.Context, profileID, otherProfileID string) (*models.Conversation, error) {
	if profileID == otherProfileID {
		return nil, fmt.Errorf("cannot start a conversation with yourself")
	}
	return s.Repo.GetOrCreateConversation(ctx, profileID, otherProfileID)
}

func (s *DefaultMessagingService) ListConversations(ctx context.Context, profileID string) ([]ConversationView, error) {
	conversations, err := s.Repo.ListConversations(ctx, profileID)
	if err != nil {
		return nil, err
	}
	views := make([]ConversationView, 0, len(conversations))
	for _, c := range conversations {
		unread, err := s.Repo.CountUnread(ctx, c.ID, profileID)
		if err != nil {
			s.Logger.Warn("unread count failed", zap.String("conversation", c.ID), zap.Error(err))
		}
		views = append(views, ConversationView{Conversation: c, UnreadCount: unread})
	}
	return views, nil
}

// Send appends a message and notifies the other participant. The sender must
// belong to the conversation.
func (s *DefaultMessagingService) Send(ctx context.Context, profileID, conversationID, content, imageURL string) (*models.Message, error) {
	if content == "" && imageURL == "" {
		return nil, ErrEmptyMessage
	}
	conversation, err := s.requireParticipant(ctx, profileID, conversationID)
	if err != nil {
		return nil, err
	}

	message := models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       profileID,
		Content:        content,
		ImageURL:       imageURL,
	}
	if _, err := s.Repo.AppendMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	other := conversation.Participant1ID
	if other == profileID {
		other = conversation.Participant2ID
	}
	notif := models.Notification{
		RecipientID: other,
		Type:        models.NotifNewMessage,
		Title:       "New Message",
		Body:        preview(content),
		Data:        map[string]string{"conversation_id": conversationID},
	}
	if err := s.Notifications.Create(ctx, notif); err != nil {
		s.Logger.Error("message notification not created", zap.String("conversation", conversationID), zap.Error(err))
	}

	return &message, nil
}

func (s *DefaultMessagingService) ListMessages(ctx context.Context, profileID, conversationID string, limit int64) ([]models.Message, error) {
	if _, err := s.requireParticipant(ctx, profileID, conversationID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMessagePage
	}
	return s.Repo.ListMessages(ctx, conversationID, limit)
}

func (s *DefaultMessagingService) MarkRead(ctx context.Context, profileID, conversationID string) error {
	if _, err := s.requireParticipant(ctx, profileID, conversationID); err != nil {
		return err
	}
	return s.Repo.MarkMessagesRead(ctx, conversationID, profileID)
}

func (s *DefaultMessagingService) requireParticipant(ctx context.Context, profileID, conversationID string) (*models.Conversation, error) {
	conversation, err := s.Repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.Participant1ID != profileID && conversation.Participant2ID != profileID {
		return nil, ErrNotParticipant
	}
	return conversation, nil
}

func preview(content string) string {
	if content == "" {
		return "Sent you a photo."
	}
	if len(content) > 80 {
		return content[:77] + "..."
	}
	return content
}
