package entity

import "time"

// Conversation is a durable thread tying one buyer, one seller and one
// product together. The chat core only reads it to resolve "who is the
// other participant".
type Conversation struct {
	ID              int64      `json:"id"`
	ProductID       int64      `json:"productId"`
	BuyerID         int64      `json:"buyerId"`
	SellerID        int64      `json:"sellerId"`
	LastMessage     string     `json:"lastMessage,omitempty"`
	LastMessageTime *time.Time `json:"lastMessageTime,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Recipient returns the participant on the other side of the conversation.
func (c *Conversation) Recipient(senderID int64) int64 {
	if c.BuyerID == senderID {
		return c.SellerID
	}
	return c.BuyerID
}

// HasParticipant reports whether userID is the buyer or the seller.
func (c *Conversation) HasParticipant(userID int64) bool {
	return c.BuyerID == userID || c.SellerID == userID
}
