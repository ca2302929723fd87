package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

const (
	DefaultSessionTTL = 24 * time.Hour
	minPasswordLength = 6
)

// sessionClaims is the signed token payload: {id, email, role, iat, exp, jti}.
type sessionClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// dummyHash is compared against when the email is unknown so both login
// failure paths pay for one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("renovate-dummy-password"), bcrypt.DefaultCost)
	return h
})

// AuthService implements registration, login and stateless session tokens.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	revoker   ports.SessionRevoker
	now       func() time.Time
	log       zerolog.Logger
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithRevoker enables the token deny-list.
func WithRevoker(r ports.SessionRevoker) AuthOption {
	return func(s *AuthService) { s.revoker = r }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger, opts ...AuthOption) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultSessionTTL
	}
	s := &AuthService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)

	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, domain.NewMissingFieldsError(missing...)
	}
	if len(in.Password) < minPasswordLength {
		return nil, &domain.ValidationError{
			Fields:  []string{"password"},
			Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		}
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, &domain.ValidationError{Fields: []string{"role"}, Message: "role must be one of: user designer worker"}
	}
	if role == domain.RoleAdmin {
		return nil, fmt.Errorf("%w: admin accounts cannot be self-registered", domain.ErrForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login checks credentials and issues a session. Unknown email and wrong
// password both return ErrInvalidCredentials; only the log tells them apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, &domain.ValidationError{Fields: []string{"email", "password"}, Message: "email and password are required"}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			s.log.Warn().Str("reason", "unknown_email").Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("reason", "bad_password").Str("user_id", user.ID).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, session, err := s.IssueSession(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("session issued")
	return &ports.LoginResult{Token: token, Session: session, User: user}, nil
}

// IssueSession signs a token for user valid for the configured TTL.
func (s *AuthService) IssueSession(user *domain.User) (string, *domain.Session, error) {
	now := s.now().UTC().Truncate(time.Second)
	session := &domain.Session{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenTTL),
	}

	claims := sessionClaims{
		UserID: session.ID,
		Email:  session.Email,
		Role:   session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.TokenID,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return token, session, nil
}

// VerifySession decodes token. Every failure wraps domain.ErrUnauthenticated.
func (s *AuthService) VerifySession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("%w (%v)", domain.ErrInvalidToken, err)
	}

	if claims.UserID == "" || !domain.ValidRole(claims.Role) || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w (incomplete claims)", domain.ErrInvalidToken)
	}

	session := &domain.Session{
		ID:        claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if session.Expired(s.now()) {
		return nil, domain.ErrSessionExpired
	}

	if s.revoker != nil && session.TokenID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, session.TokenID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", session.ID).Msg("revocation check failed, accepting token")
		} else if revoked {
			return nil, domain.ErrTokenRevoked
		}
	}

	return session, nil
}

// Logout deny-lists the session's token until it would have expired anyway.
// Without a revoker it is a no-op; the caller still clears the cookie.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil || s.revoker == nil || session.TokenID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("user_id", session.ID).Msg("session revoked")
	return nil
}

func (s *AuthService) Me(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if session == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindByID(ctx, session.ID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
