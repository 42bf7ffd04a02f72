// Package auth owns account registration and login, and the bearer tokens
// the storyboard API and the preview hub authenticate with.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/framecraft/framecraft/internal/db"
	"github.com/framecraft/framecraft/internal/typeid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnknownAccount     = errors.New("account not found")

	ErrInvalidEmail  = errors.New("malformed email address")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
	ErrInvalidHandle = errors.New("handle must be 3-32 characters: lowercase letters, digits, hyphens, starting with a letter or digit")
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
	tokenLifetime     = 24 * time.Hour
	tokenIssuer       = "framecraft"
)

// handlePattern is the public-name rule: handles appear in shared preview
// rooms and must be URL- and log-safe.
var handlePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{2,31}$`)

type Service struct {
	queries *db.Queries
	secret  []byte
}

func NewService(queries *db.Queries, jwtSecret string) *Service {
	return &Service{
		queries: queries,
		secret:  []byte(jwtSecret),
	}
}

// Account is the public view of a user.
type Account struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Handle string `json:"handle"`
}

// Session is what register and login hand back: a signed bearer token and
// the account it authenticates.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Account   Account   `json:"account"`
}

// Register validates the credentials, stores the account with a bcrypt
// password hash, and opens a session for it.
func (s *Service) Register(ctx context.Context, email, password, handle string) (*Session, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	if !handlePattern.MatchString(handle) {
		return nil, ErrInvalidHandle
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.queries.CreateUser(ctx, db.CreateUserParams{
		ID:           typeid.NewUserID(),
		Email:        email,
		PasswordHash: string(hash),
		Handle:       handle,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.newSession(accountOf(user))
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(accountOf(user))
}

// Account looks up the account a token subject refers to. Tokens outlive
// account deletion, so callers use this to confirm the subject still exists.
func (s *Service) Account(ctx context.Context, userID string) (*Account, error) {
	user, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnknownAccount
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	account := accountOf(user)
	return &account, nil
}

// ValidateToken checks signature, method, expiry, and issuer, and returns
// the user ID the token was issued for. The subject must be a well-formed
// user TypeID; tokens minted for other entity kinds are rejected.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	if err := typeid.Validate(claims.Subject, typeid.PrefixUser); err != nil {
		return "", fmt.Errorf("token subject: %w", err)
	}

	return claims.Subject, nil
}

func (s *Service) newSession(account Account) (*Session, error) {
	now := time.Now()
	expires := now.Add(tokenLifetime)

	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   account.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Session{
		Token:     signed,
		ExpiresAt: expires,
		Account:   account,
	}, nil
}

func accountOf(user db.User) Account {
	return Account{
		ID:     user.ID,
		Email:  user.Email,
		Handle: user.Handle,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
