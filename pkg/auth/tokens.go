package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const (
	verifyAudience = "bookswap:verify"
	resetAudience  = "bookswap:reset"

	tokenKindVerify = "verify_user"
	tokenKindReset  = "reset_password"
)

// RequestVerifyToken issues a verification token for an active, unverified
// user. Unknown, inactive, and already verified emails get an empty token and
// no error, so callers can't probe which addresses are registered.
func (s *Service) RequestVerifyToken(ctx context.Context, email string) (string, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil || !user.IsActive || user.IsVerified {
		return "", nil
	}

	token, err := s.issue(user, verifyAudience, s.verifyTTL, Claims{Email: user.Email})
	if err != nil {
		return "", err
	}

	logEvent(ctx, eventVerifyRequested, user, logger.Data{"token": token})
	return token, nil
}

// Verify marks the user the token was issued for as verified.
func (s *Service) Verify(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parse(token, verifyAudience)
	if err != nil {
		return nil, errcodes.BadToken(tokenKindVerify)
	}
	user, err := s.userFromClaims(ctx, claims)
	if err != nil || user.Email != claims.Email {
		return nil, errcodes.BadToken(tokenKindVerify)
	}
	if user.IsVerified {
		return nil, errcodes.AlreadyVerified()
	}

	user.IsVerified = true
	if err := s.users.Update(ctx, user, "is_verified"); err != nil {
		return nil, err
	}

	logEvent(ctx, eventVerified, user, nil)
	return user, nil
}

// ForgotPassword issues a password reset token for an active user. Unknown and
// inactive emails get an empty token and no error.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil || !user.IsActive {
		return "", nil
	}

	token, err := s.issue(user, resetAudience, s.resetTTL, Claims{Fingerprint: fingerprint(user.HashedPassword)})
	if err != nil {
		return "", err
	}

	logEvent(ctx, eventForgotPassword, user, logger.Data{"token": token})
	return token, nil
}

// ResetPassword sets a new password for the user the token was issued for.
// The token embeds a fingerprint of the current password hash, so it stops
// working once the password changes.
func (s *Service) ResetPassword(ctx context.Context, token, password string) (*models.User, error) {
	claims, err := s.parse(token, resetAudience)
	if err != nil {
		return nil, errcodes.BadToken(tokenKindReset)
	}
	user, err := s.userFromClaims(ctx, claims)
	if err != nil || claims.Fingerprint != fingerprint(user.HashedPassword) {
		return nil, errcodes.BadToken(tokenKindReset)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = hash
	if err := s.users.Update(ctx, user, "hashed_password"); err != nil {
		return nil, err
	}

	logEvent(ctx, eventPasswordReset, user, nil)
	return user, nil
}

func (s *Service) userFromClaims(ctx context.Context, claims *Claims) (*models.User, error) {
	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

func (s *Service) issue(user *models.User, audience string, lifetime time.Duration, claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   user.ID.String(),
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return signedToken, nil
}

func (s *Service) parse(tokenString, audience string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithAudience(audience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func fingerprint(hashedPassword string) string {
	sum := sha256.Sum256([]byte(hashedPassword))
	return hex.EncodeToString(sum[:])
}
