package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"socialhub_backend/internal/model"
)

// SessionCookieName is the cookie checked when no bearer token is sent.
const SessionCookieName = "session_token"

var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims is the payload the auth service signs with the shared secret.
type SessionClaims struct {
	SessionID string `json:"sid"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Image     string `json:"image,omitempty"`
	jwt.RegisteredClaims
}

// JWTProvider verifies HS256 session tokens locally instead of calling the auth service.
type JWTProvider struct {
	secret []byte
}

func NewJWTProvider(secret string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret)}
}

// GetSession checks the Authorization header first (mobile), then the session cookie (web).
func (p *JWTProvider) GetSession(ctx context.Context, headers http.Header) (*model.Session, error) {
	tokenString := tokenFromHeaders(headers)
	if tokenString == "" {
		return nil, nil
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return p.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	session := &model.Session{
		User: model.SessionUser{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
		},
		Session: model.SessionInfo{
			ID:     claims.SessionID,
			UserID: claims.Subject,
		},
	}
	if claims.Image != "" {
		image := claims.Image
		session.User.Image = &image
	}
	if claims.ExpiresAt != nil {
		session.Session.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		session.User.CreatedAt = claims.IssuedAt.Time
	}

	return session, nil
}

// IssueToken signs claims for userID. The auth service owns issuance; this
// exists for tests and local tooling.
func (p *JWTProvider) IssueToken(userID, name, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func tokenFromHeaders(headers http.Header) string {
	if authHeader := headers.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	req := http.Request{Header: headers}
	if cookie, err := req.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
