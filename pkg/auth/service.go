package auth

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/bookswap/bookswap/pkg/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing.
	BcryptCost = 12

	accessAudience = "bookswap:auth"
)

// Claims represents the claims in any token the service issues. The audience
// tells access, verify, and reset tokens apart.
type Claims struct {
	Email       string `json:"email,omitempty"`
	Fingerprint string `json:"password_fgpt,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the user the token was issued for.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	return id, errors.WithStack(err)
}

type Options struct {
	JWTSecret           string
	TokenLifetime       time.Duration
	VerifyTokenLifetime time.Duration
	ResetTokenLifetime  time.Duration
	// Revocations records logged out tokens. Logout is a no-op without it.
	Revocations Revocations
}

// Service handles authentication operations.
type Service struct {
	db          *bun.DB
	users       *store.Store[models.User, *models.User]
	jwtSecret   []byte
	revocations Revocations
	lifetime    time.Duration
	verifyTTL   time.Duration
	resetTTL    time.Duration
	bcryptCost  int
}

// NewService creates a new auth service.
func NewService(db *bun.DB, opts Options) *Service {
	revocations := opts.Revocations
	if revocations == nil {
		revocations = nopRevocations{}
	}
	return &Service{
		db:          db,
		users:       store.New[models.User](db),
		jwtSecret:   []byte(opts.JWTSecret),
		revocations: revocations,
		lifetime:    opts.TokenLifetime,
		verifyTTL:   opts.VerifyTokenLifetime,
		resetTTL:    opts.ResetTokenLifetime,
		bcryptCost:  BcryptCost,
	}
}

// Register creates a new active, unverified, non-privileged user.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	exists, err := s.users.Exists(ctx, whereEmail(email))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errcodes.UserAlreadyExists()
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, errcodes.Conflict(user.Resource())) {
			return nil, errcodes.UserAlreadyExists()
		}
		return nil, err
	}

	logEvent(ctx, eventRegistered, user, nil)
	return user, nil
}

// Authenticate validates credentials and returns the user if valid. Only
// active, verified users can log in.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errcodes.NotFound("User")) {
			return nil, errcodes.BadCredentials()
		}
		return nil, err
	}

	if !CheckPassword(password, user.HashedPassword) || !user.IsActive {
		return nil, errcodes.BadCredentials()
	}
	if !user.IsVerified {
		return nil, errcodes.UserNotVerified()
	}

	return user, nil
}

// GenerateToken creates a new access token for the user.
func (s *Service) GenerateToken(user *models.User) (string, error) {
	return s.issue(user, accessAudience, s.lifetime, Claims{})
}

// ValidateToken validates an access token and returns its claims. Tokens that
// were revoked by logging out are rejected.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString, accessAudience)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, errors.New("token has been revoked")
	}

	return claims, nil
}

// Logout revokes the access token the claims were read from until it
// expires.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// GetUserByID retrieves an active user by ID.
func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errcodes.NotFound("User")
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email, ignoring case.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Apply(whereEmail(normalizeEmail(email))).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcodes.NotFound("User")
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return user, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(hashedPassword), nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a password with a hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func whereEmail(email string) store.QueryFunc {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("u.email = ? COLLATE NOCASE", email)
	}
}
