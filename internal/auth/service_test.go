package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/framecraft/framecraft/internal/typeid"
)

func TestSessionRoundTrip(t *testing.T) {
	svc := NewService(nil, "test-secret")
	account := Account{ID: typeid.NewUserID(), Email: "ada@example.com", Handle: "ada"}

	session, err := svc.newSession(account)
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	if session.Account != account {
		t.Errorf("session account = %+v, want %+v", session.Account, account)
	}
	if remaining := time.Until(session.ExpiresAt); remaining < 23*time.Hour {
		t.Errorf("session expires in %v, want about 24h", remaining)
	}

	userID, err := svc.ValidateToken(session.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != account.ID {
		t.Errorf("subject = %q, want %q", userID, account.ID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewService(nil, "secret-a")
	verifier := NewService(nil, "secret-b")

	session, err := issuer.newSession(Account{ID: typeid.NewUserID()})
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}

	if _, err := verifier.ValidateToken(session.Token); err == nil {
		t.Error("token signed with a different secret must not validate")
	}
}

func TestValidateTokenRejects(t *testing.T) {
	svc := NewService(nil, "test-secret")
	sign := func(claims jwt.RegisteredClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return token
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"foreign issuer", sign(jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   typeid.NewUserID(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})},
		{"expired", sign(jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   typeid.NewUserID(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		})},
		{"no expiry", sign(jwt.RegisteredClaims{
			Issuer:  tokenIssuer,
			Subject: typeid.NewUserID(),
		})},
		{"non-user subject", sign(jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   typeid.NewStoryboardID(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateToken(tt.token); err == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	// Validation runs before any query, so a nil query layer is fine here.
	svc := NewService(nil, "test-secret")

	tests := []struct {
		name     string
		email    string
		password string
		handle   string
		want     error
	}{
		{"bad email", "not-an-email", "longenough", "ada", ErrInvalidEmail},
		{"empty email", "", "longenough", "ada", ErrInvalidEmail},
		{"short password", "ada@example.com", "short", "ada", ErrWeakPassword},
		{"handle too short", "ada@example.com", "longenough", "ab", ErrInvalidHandle},
		{"handle uppercase", "ada@example.com", "longenough", "Ada", ErrInvalidHandle},
		{"handle leading hyphen", "ada@example.com", "longenough", "-ada", ErrInvalidHandle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.password, tt.handle)
			if err != tt.want {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoginEmptyCredentials(t *testing.T) {
	svc := NewService(nil, "test-secret")
	if _, err := svc.Login(context.Background(), "", ""); err != ErrInvalidCredentials {
		t.Errorf("Login() error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		query  string
		want   string
	}{
		{"header", "Bearer abc123", "", "abc123"},
		{"wrong scheme", "Basic abc123", "", ""},
		{"query fallback", "", "xyz789", "xyz789"},
		{"header wins", "Bearer abc123", "xyz789", "abc123"},
		{"nothing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/?token="+tt.query, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := BearerToken(r); got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
