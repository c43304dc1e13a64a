package messagingRepo

import (
	"context"
	"time"

	"github.com/msutyak/careconnect/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrCreateConversation returns the conversation between two profiles,
// creating it on first contact. Participant order is irrelevant.
func (r *mongoMessagingRepo) GetOrCreateConversation(ctx context.Context, profileA, profileB string) (*models.Conversation, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"participant_1_id": profileA, "participant_2_id": profileB},
		bson.M{"participant_1_id": profileB, "participant_2_id": profileA},
	}}

	var conv models.Conversation
	err := r.conversations.FindOne(ctx, filter).Decode(&conv)
	if err == nil {
		return &conv, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	conv = models.Conversation{
		ID:             uuid.New().String(),
		Participant1ID: profileA,
		Participant2ID: profileB,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if _, err := r.conversations.InsertOne(ctx, conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns all conversations involving a profile, most
// recently active first.
func (r *mongoMessagingRepo) ListConversations(ctx context.Context, profileID string) ([]models.Conversation, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"participant_1_id": profileID},
		bson.M{"participant_2_id": profileID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cursor, err := r.conversations.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conversations []models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// GetConversation returns a conversation by its ID.
func (r *mongoMessagingRepo) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.conversations.FindOne(ctx, bson.M{"id": id}).Decode(&conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// AppendMessage adds a message to the conversation log and refreshes the
// conversation's last-message cache.
func (r *mongoMessagingRepo) AppendMessage(ctx context.Context, message models.Message) (string, error) {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	if _, err := r.messages.InsertOne(ctx, message); err != nil {
		return "", err
	}

	update := bson.M{"$set": bson.M{
		"last_message":    message.Content,
		"last_message_at": message.CreatedAt,
		"updated_at":      message.CreatedAt,
	}}
	if _, err := r.conversations.UpdateOne(ctx, bson.M{"id": message.ConversationID}, update); err != nil {
		return "", err
	}
	return message.ID, nil
}

// ListMessages returns the newest messages of a conversation, oldest first.
func (r *mongoMessagingRepo) ListMessages(ctx context.Context, conversationID string, limit int64) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.messages.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkMessagesRead flags every message addressed to the reader as read.
func (r *mongoMessagingRepo) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	filter := bson.M{
		"conversation_id": conversationID,
		"sender_id":       bson.M{"$ne": readerID},
		"is_read":         false,
	}
	_, err := r.messages.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_read": true}})
	return err
}

// CountUnread counts messages in a conversation not yet read by the reader.
func (r *mongoMessagingRepo) CountUnread(ctx context.Context, conversationID, readerID string) (int64, error) {
	filter := bson.M{
		"conversation_id": conversationID,
		"sender_id":       bson.M{"$ne": readerID},
		"is_read":         false,
	}
	return r.messages.CountDocuments(ctx, filter)
}
