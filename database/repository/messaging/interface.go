package messagingRepo

import (
	"context"

	"github.com/msutyak/careconnect/database"
	"github.com/msutyak/careconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type MessagingRepository interface {
	GetOrCreateConversation(ctx context.Context, profileA, profileB string) (*models.Conversation, error)
	ListConversations(ctx context.Context, profileID string) ([]models.Conversation, error)
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
	AppendMessage(ctx context.Context, message models.Message) (string, error)
	ListMessages(ctx context.Context, conversationID string, limit int64) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) error
	CountUnread(ctx context.Context, conversationID, readerID string) (int64, error)
}

type mongoMessagingRepo struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMongoMessagingRepo returns a MessagingRepository backed by MongoDB.
func NewMongoMessagingRepo() MessagingRepository {
	db := database.DB()
	return &mongoMessagingRepo{
		conversations: db.Collection("conversations"),
		messages:      db.Collection("messages"),
	}
}
