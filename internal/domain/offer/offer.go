package offer

import "time"

// Status represents the status of an offer
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Offer represents a buyer's offer on a product. SellerID is copied from the
// product's owner at creation time so transition checks never re-read the
// product.
type Offer struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ProductID string    `json:"productId" bson:"product_id"`
	BuyerID   string    `json:"buyerId" bson:"buyer_id"`
	SellerID  string    `json:"sellerId" bson:"seller_id"`
	Amount    float64   `json:"amount" bson:"amount"`
	Message   string    `json:"message,omitempty" bson:"message,omitempty"`
	Status    Status    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// IsDecision returns true if the status is one a seller may move a pending
// offer to
func (s Status) IsDecision() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// IsTerminal returns true if no further transition is allowed from the status
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// IsPending returns true if the offer has not been decided yet
func (o *Offer) IsPending() bool {
	return o.Status == StatusPending
}

// IsSelfOffer returns true if the buyer is also the seller
func (o *Offer) IsSelfOffer() bool {
	return o.BuyerID == o.SellerID
}

// Accept marks the offer as accepted
func (o *Offer) Accept() {
	o.Status = StatusAccepted
	o.UpdatedAt = time.Now()
}

// Decline marks the offer as declined
func (o *Offer) Decline() {
	o.Status = StatusDeclined
	o.UpdatedAt = time.Now()
}
