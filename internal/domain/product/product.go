package product

import (
	"strings"
	"time"
)

// Condition represents the physical condition of a product
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
)

// Visibility controls who can see a product in listings
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Product represents a marketplace listing
type Product struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Price       float64    `json:"price" bson:"price"`
	Inventory   int        `json:"inventory" bson:"inventory"`
	Condition   Condition  `json:"condition" bson:"condition"`
	Category    string     `json:"category" bson:"category"`
	Visibility  Visibility `json:"visibility" bson:"visibility"`
	Pickup      bool       `json:"pickup" bson:"pickup"`
	ShipOptions []string   `json:"shipOptions" bson:"ship_options"`
	Photos      []string   `json:"photos" bson:"photos"`
	OwnerID     string     `json:"ownerId" bson:"owner_id"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updated_at"`
}

// IsValid returns true if the condition is a known value
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
		return true
	}
	return false
}

// IsValid returns true if the visibility is a known value
func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// IsPublic returns true if the product appears in public listings
func (p *Product) IsPublic() bool {
	return p.Visibility == VisibilityPublic
}

// IsOwnedBy returns true if the product belongs to the given user
func (p *Product) IsOwnedBy(userID string) bool {
	return p.OwnerID == userID
}

// MatchesQuery returns true if the free-text query matches the title or
// category, case-insensitive
func (p *Product) MatchesQuery(q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}
