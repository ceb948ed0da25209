package models

import "time"

// Message is a direct message between two users. Only Read is mutable.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"index;not null" json:"senderId"`
	ReceiverID uint      `gorm:"index;not null" json:"receiverId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// Relay envelope types.
const (
	EnvelopeMessage = "message"
	EnvelopeSystem  = "system"
)

// ChatEnvelope is the JSON frame exchanged over the chat WebSocket.
type ChatEnvelope struct {
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	SessionID  string    `json:"sessionId,omitempty"`
	SenderID   any       `json:"senderId,omitempty"`
	SenderName string    `json:"senderName,omitempty"`
	ReceiverID *uint     `json:"receiverId,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
