package bookmark

import "time"

// Bookmark represents a (user, product) pair, unique per pair
type Bookmark struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"user_id"`
	ProductID string    `json:"productId" bson:"product_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// IsOwnedBy returns true if the bookmark belongs to the given user
func (b *Bookmark) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}
