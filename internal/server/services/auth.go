// Package services contains server-side business logic. This file implements
// AuthService, which owns the credential lifecycle: login, signup, refresh
// rotation, email verification and password reset.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/surveyforge/authcore/internal/common"
	"github.com/surveyforge/authcore/internal/dbx"
	"github.com/surveyforge/authcore/internal/logging"
	"github.com/surveyforge/authcore/internal/server/auth"
	"github.com/surveyforge/authcore/internal/server/config"
	"github.com/surveyforge/authcore/internal/server/mail"
	"github.com/surveyforge/authcore/internal/server/models"
	"github.com/surveyforge/authcore/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides the credential-lifecycle operations. All state lives
// in storage; the service itself holds only immutable configuration and
// collaborators, so concurrent requests need no coordination here.
type AuthService struct {
	db              *sql.DB
	repos           repomanager.RepositoryManager
	hasher          *auth.PasswordHasher
	codec           *auth.TokenCodec
	mailer          mail.Mailer
	logger          logging.Logger
	purposeTokenTTL time.Duration
}

// NewAuthService constructs an AuthService using repositories, crypto
// primitives, the mail collaborator, and server config.
func NewAuthService(db *sql.DB, repos repomanager.RepositoryManager, hasher *auth.PasswordHasher,
	codec *auth.TokenCodec, mailer mail.Mailer, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:              db,
		repos:           repos,
		hasher:          hasher,
		codec:           codec,
		mailer:          mailer,
		logger:          logger.With("component", "auth_service"),
		purposeTokenTTL: cfg.PurposeTokenValidityDuration,
	}
}

// Login verifies the credentials and mints a fresh token pair. An unknown
// email and a wrong password produce the same common.ErrInvalidCredentials,
// so a caller cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "error searching user", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(ctx, user.ID, user.Email, s.db)
	if err != nil {
		s.logger.Error(ctx, "error generating token pair", "error", err)
		return nil, common.ErrorInternal
	}

	return pair, nil
}

// SignUp hashes the password, creates the user and issues an
// email-verification token. A duplicate email yields
// common.ErrEmailAlreadyExists. Failure to deliver the verification email is
// logged and does not fail the signup; the client can always resend.
func (s *AuthService) SignUp(ctx context.Context, email, name, password string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "error hashing password", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	user, err = s.repos.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrEmailAlreadyExists
		}
		s.logger.Error(ctx, "error creating user", "error", err)
		return nil, common.ErrorInternal
	}

	token, err := s.repos.PurposeTokens(s.db).Create(ctx, user.ID, models.PurposeEmailVerification, s.purposeTokenTTL)
	if err != nil {
		s.logger.Error(ctx, "error creating verification token", "error", err)
		return nil, common.ErrorInternal
	}

	if err := s.mailer.SendEmailConfirmation(ctx, user, token.Token); err != nil {
		s.logger.Error(ctx, "error sending confirmation email", "error", err)
	}

	return user, nil
}

// RefreshToken validates a refresh token, rotates it and returns a fresh
// pair. The presented token's row is deleted in the same transaction that
// creates the replacement; the delete's affected-row count decides the
// winner when two requests race on the same token, and the loser gets
// common.ErrInvalidRefreshToken. Bad signature and already-rotated are
// deliberately indistinguishable to the caller.
func (s *AuthService) RefreshToken(ctx context.Context, tokenString string) (*TokenPair, error) {
	claims, err := s.codec.VerifyRefreshToken(tokenString)
	if err != nil {
		return nil, common.ErrInvalidRefreshToken
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		deleted, err := s.repos.RefreshTokens(tx).Delete(ctx, tokenString, claims.Subject)
		if err != nil {
			return err
		}
		if !deleted {
			return common.ErrInvalidRefreshToken
		}

		var genErr error
		pair, genErr = s.generateTokenPair(ctx, claims.Subject, claims.Email, tx)
		return genErr
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidRefreshToken) {
			return nil, common.ErrInvalidRefreshToken
		}
		s.logger.Error(ctx, "error rotating refresh token", "error", err)
		return nil, common.ErrorInternal
	}

	return pair, nil
}

// VerifyEmail consumes an email-verification token: the token must exist for
// that purpose and be unexpired. The user is marked verified and the token
// deleted, so a second call with the same token fails.
func (s *AuthService) VerifyEmail(ctx context.Context, tokenString string) error {
	token, err := s.findUsablePurposeToken(ctx, tokenString, models.PurposeEmailVerification)
	if err != nil {
		return err
	}

	if err := s.repos.Users(s.db).SetEmailVerified(ctx, token.UserID, true); err != nil {
		s.logger.Error(ctx, "error marking email verified", "error", err)
		return common.ErrorInternal
	}

	if err := s.repos.PurposeTokens(s.db).Delete(ctx, token.Token); err != nil {
		s.logger.Error(ctx, "error deleting verification token", "error", err)
		return common.ErrorInternal
	}

	return nil
}

// ResendVerificationEmail issues a new verification token and mails it.
// When the email is not registered it returns success anyway, so the
// response never reveals whether an account exists.
func (s *AuthService) ResendVerificationEmail(ctx context.Context, email string) error {
	return s.sendPurposeToken(ctx, email, models.PurposeEmailVerification)
}

// ForgotPassword issues a password-reset token and mails it. Same
// anti-enumeration contract as ResendVerificationEmail.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.sendPurposeToken(ctx, email, models.PurposePasswordReset)
}

// ResetPassword consumes a password-reset token and replaces the user's
// password hash. The token is deleted afterwards (single use).
func (s *AuthService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	token, err := s.findUsablePurposeToken(ctx, tokenString, models.PurposePasswordReset)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error(ctx, "error hashing password", "error", err)
		return common.ErrorInternal
	}

	if err := s.repos.Users(s.db).SetPasswordHash(ctx, token.UserID, hash); err != nil {
		s.logger.Error(ctx, "error updating password", "error", err)
		return common.ErrorInternal
	}

	if err := s.repos.PurposeTokens(s.db).Delete(ctx, token.Token); err != nil {
		s.logger.Error(ctx, "error deleting reset token", "error", err)
		return common.ErrorInternal
	}

	return nil
}

// Profile returns the account record for an authenticated user. A token
// whose subject no longer exists yields common.ErrInvalidToken.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		s.logger.Error(ctx, "error loading user", "error", err)
		return nil, common.ErrorInternal
	}
	return user, nil
}

// findUsablePurposeToken looks up a purpose token and enforces the two
// liveness conditions: the row still exists and the expiry has not passed.
// Both failures surface as the same common.ErrInvalidPurposeToken.
func (s *AuthService) findUsablePurposeToken(ctx context.Context, tokenString string, purpose models.TokenPurpose) (*models.PurposeToken, error) {
	token, err := s.repos.PurposeTokens(s.db).Find(ctx, tokenString, purpose)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidPurposeToken
		}
		s.logger.Error(ctx, "error searching purpose token", "error", err)
		return nil, common.ErrorInternal
	}

	if token.Expired(time.Now()) {
		return nil, common.ErrInvalidPurposeToken
	}

	return token, nil
}

// sendPurposeToken implements the shared resend/forgot flow. Note that
// previously issued tokens of the same purpose stay live; whether to revoke
// them on reissue is a policy decision this service deliberately does not
// make.
func (s *AuthService) sendPurposeToken(ctx context.Context, email string, purpose models.TokenPurpose) error {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Unknown address: answer exactly like the known-address path.
			return nil
		}
		s.logger.Error(ctx, "error searching user", "error", err)
		return common.ErrorInternal
	}

	token, err := s.repos.PurposeTokens(s.db).Create(ctx, user.ID, purpose, s.purposeTokenTTL)
	if err != nil {
		s.logger.Error(ctx, "error creating purpose token", "error", err)
		return common.ErrorInternal
	}

	switch purpose {
	case models.PurposePasswordReset:
		err = s.mailer.SendPasswordReset(ctx, user, token.Token)
	default:
		err = s.mailer.SendEmailConfirmation(ctx, user, token.Token)
	}
	if err != nil {
		s.logger.Error(ctx, "error sending email", "purpose", string(purpose), "error", err)
	}

	return nil
}

// generateTokenPair signs a new access/refresh pair and persists the refresh
// half through the given handle (pool or transaction).
func (s *AuthService) generateTokenPair(ctx context.Context, userID, email string, db dbx.DBTX) (*TokenPair, error) {
	accessToken, err := s.codec.SignAccessToken(userID, email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.codec.SignRefreshToken(userID, email)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.RefreshTokens(db).Create(ctx, userID, refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
