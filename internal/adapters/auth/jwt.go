package auth

import (
	"context"
	"fmt"
	"time"

	"troffee-marketplace-service/internal/domain/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// JWTVerifier verifies HS256 bearer tokens issued by the identity provider.
// The token subject is the stable user identifier.
type JWTVerifier struct {
	secret []byte
	logger zerolog.Logger
}

type JWTVerifierParams struct {
	Secret string
	Logger zerolog.Logger
}

// NewJWTVerifier creates a new JWT verifier
func NewJWTVerifier(params JWTVerifierParams) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(params.Secret),
		logger: params.Logger.With().Str("component", "jwt_verifier").Logger(),
	}
}

type claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verify validates a bearer token and yields the caller identity
func (v *JWTVerifier) Verify(ctx context.Context, tokenStr string) (shared.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		v.logger.Debug().Err(err).Msg("Token verification failed")
		return shared.Identity{}, shared.ErrInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.Subject == "" {
		return shared.Identity{}, shared.ErrInvalidToken
	}

	return shared.Identity{UserID: c.Subject, Email: c.Email}, nil
}

// GenerateToken issues a signed token for a user. Used by tooling and tests;
// production tokens come from the identity provider.
func GenerateToken(secret, userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(secret))
}
