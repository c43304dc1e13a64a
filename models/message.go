package models

import "time"

// Conversation links two profiles and caches the latest message for list views.
type Conversation struct {
	ID             string    `bson:"id" json:"id"`
	Participant1ID string    `bson:"participant_1_id" json:"participant1Id"`
	Participant2ID string    `bson:"participant_2_id" json:"participant2Id"`
	LastMessage    string    `bson:"last_message,omitempty" json:"lastMessage,omitempty"`
	LastMessageAt  time.Time `bson:"last_message_at,omitempty" json:"lastMessageAt,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// Message is one entry in a conversation's append-only log.
type Message struct {
	ID             string    `bson:"id" json:"id"`
	ConversationID string    `bson:"conversation_id" json:"conversationId"`
	SenderID       string    `bson:"sender_id" json:"senderId"`
	Content        string    `bson:"content" json:"content"`
	ImageURL       string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	IsRead         bool      `bson:"is_read" json:"isRead"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
