package review

import (
	"math"
	"time"
)

// Review represents a user's review of a product. Reviews are append-only;
// there is no update or delete path.
type Review struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ProductID string    `json:"productId" bson:"product_id"`
	Rating    int       `json:"rating" bson:"rating"`
	Text      string    `json:"text" bson:"text"`
	AuthorID  string    `json:"authorId" bson:"author_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Summary aggregates ratings for a product
type Summary struct {
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// RatingValid returns true if the rating is in the 1-5 range
func RatingValid(rating int) bool {
	return rating >= 1 && rating <= 5
}

// Summarize computes the average rating rounded to one decimal place and the
// review count
func Summarize(reviews []*Review) Summary {
	if len(reviews) == 0 {
		return Summary{}
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	avg := float64(sum) / float64(len(reviews))
	return Summary{
		Avg:   math.Round(avg*10) / 10,
		Count: len(reviews),
	}
}
