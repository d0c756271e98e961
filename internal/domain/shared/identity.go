package shared

// Identity represents a verified caller identity resolved from a bearer
// credential. UserID is the stable subject identifier; it is the only value
// trusted for ownership decisions.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
}
