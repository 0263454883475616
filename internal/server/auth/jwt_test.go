package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/surveyforge/authcore/internal/common"
)

func newTestCodec() *TokenCodec {
	return NewTokenCodec([]byte("access-secret"), []byte("refresh-secret"), time.Hour, 24*time.Hour)
}

func TestSignAndVerifyAccessToken_Success(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	tok, err := codec.SignAccessToken("user-123", "a@x.com")
	if err != nil {
		t.Fatalf("SignAccessToken error: %v", err)
	}

	claims, err := codec.VerifyAccessToken(tok)
	if err != nil {
		t.Fatalf("VerifyAccessToken error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, "user-123")
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("email mismatch: got %q want %q", claims.Email, "a@x.com")
	}
}

func TestSignAndVerifyRefreshToken_Success(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	tok, err := codec.SignRefreshToken("user-456", "b@x.com")
	if err != nil {
		t.Fatalf("SignRefreshToken error: %v", err)
	}

	claims, err := codec.VerifyRefreshToken(tok)
	if err != nil {
		t.Fatalf("VerifyRefreshToken error: %v", err)
	}
	if claims.Subject != "user-456" || claims.Email != "b@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestSignRefreshToken_UniquePerCall(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	first, err := codec.SignRefreshToken("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("SignRefreshToken error: %v", err)
	}
	second, err := codec.SignRefreshToken("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("SignRefreshToken error: %v", err)
	}

	// same user, same instant: the tokens must still differ
	if first == second {
		t.Fatal("two signed tokens must never be identical")
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("a"), []byte("r"), -1*time.Second, time.Hour)

	tok, err := codec.SignAccessToken("u1", "u1@x.com")
	if err != nil {
		t.Fatalf("SignAccessToken error: %v", err)
	}

	_, err = codec.VerifyAccessToken(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()
	other := NewTokenCodec([]byte("other-secret"), []byte("r"), time.Hour, time.Hour)

	tok, err := codec.SignAccessToken("u2", "u2@x.com")
	if err != nil {
		t.Fatalf("SignAccessToken error: %v", err)
	}

	_, err = other.VerifyAccessToken(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyAccessToken_RejectsRefreshToken(t *testing.T) {
	t.Parallel()

	// The two families use independent secrets: a refresh token must never
	// pass access-token verification.
	codec := newTestCodec()

	tok, err := codec.SignRefreshToken("u3", "u3@x.com")
	if err != nil {
		t.Fatalf("SignRefreshToken error: %v", err)
	}

	_, err = codec.VerifyAccessToken(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for cross-family token, got %v", err)
	}
}

func TestVerifyAccessToken_MalformedString(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	_, err := codec.VerifyAccessToken("not.a.jwt")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for malformed token, got %v", err)
	}
}
