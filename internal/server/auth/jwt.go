// Package auth implements the cryptographic primitives of the
// authentication core: bcrypt password hashing and HS256 token
// signing/verification for the access and refresh token families.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/surveyforge/authcore/internal/common"
)

// Claims carries the signed token payload: Subject holds the user ID and
// Email the account email at issue time.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenCodec signs and verifies access and refresh tokens. The two families
// use separate secrets and lifetimes, so compromise of one secret does not
// compromise the other, and access tokens can stay short-lived while refresh
// tokens remain independently revocable.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenCodec constructs a codec with explicit secrets and lifetimes.
// Secrets are never read from ambient state.
func NewTokenCodec(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *TokenCodec {
	return &TokenCodec{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// SignAccessToken produces a signed access token for the user.
func (c *TokenCodec) SignAccessToken(userID, email string) (string, error) {
	return sign(userID, email, c.accessSecret, c.accessTTL)
}

// VerifyAccessToken checks the access token signature and expiry and returns
// its claims. Any failure yields common.ErrInvalidToken.
func (c *TokenCodec) VerifyAccessToken(tokenString string) (*Claims, error) {
	return verify(tokenString, c.accessSecret)
}

// SignRefreshToken produces a signed refresh token for the user.
func (c *TokenCodec) SignRefreshToken(userID, email string) (string, error) {
	return sign(userID, email, c.refreshSecret, c.refreshTTL)
}

// VerifyRefreshToken checks the refresh token signature and expiry and
// returns its claims. Any failure yields common.ErrInvalidToken.
func (c *TokenCodec) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return verify(tokenString, c.refreshSecret)
}

func sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// The ID makes every issued token distinct, even two tokens
			// signed for the same user within the same second.
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
