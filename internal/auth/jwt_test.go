package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestJWTProvider_GetSession(t *testing.T) {
	p := NewJWTProvider(testSecret)

	valid, err := p.IssueToken("user-1", "Alice", "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	expired, err := p.IssueToken("user-1", "Alice", "alice@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	foreign, err := NewJWTProvider("other-secret").IssueToken("user-1", "Alice", "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tests := []struct {
		name     string
		headers  http.Header
		wantUser string
		wantErr  bool
	}{
		{
			name:     "bearer token",
			headers:  http.Header{"Authorization": {"Bearer " + valid}},
			wantUser: "user-1",
		},
		{
			name:     "session cookie",
			headers:  http.Header{"Cookie": {SessionCookieName + "=" + valid}},
			wantUser: "user-1",
		},
		{
			name:    "no credentials",
			headers: http.Header{},
		},
		{
			name:    "expired token",
			headers: http.Header{"Authorization": {"Bearer " + expired}},
			wantErr: true,
		},
		{
			name:    "wrong secret",
			headers: http.Header{"Authorization": {"Bearer " + foreign}},
			wantErr: true,
		},
		{
			name:    "garbage",
			headers: http.Header{"Authorization": {"Bearer not-a-jwt"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := p.GetSession(context.Background(), tt.headers)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if session != nil {
					t.Error("session should be nil on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			if tt.wantUser == "" {
				if session != nil {
					t.Errorf("session = %+v, want nil", session)
				}
				return
			}
			if session == nil {
				t.Fatal("expected session, got nil")
			}
			if session.User.ID != tt.wantUser {
				t.Errorf("user id = %q, want %q", session.User.ID, tt.wantUser)
			}
			if session.User.Email != "alice@example.com" {
				t.Errorf("email = %q, want %q", session.User.Email, "alice@example.com")
			}
		})
	}
}

func TestJWTProvider_RejectsNoneAlgorithm(t *testing.T) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	session, err := NewJWTProvider(testSecret).GetSession(context.Background(),
		http.Header{"Authorization": {"Bearer " + token}})
	if err == nil || session != nil {
		t.Errorf("GetSession = (%v, %v), want rejection", session, err)
	}
}
