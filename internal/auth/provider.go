package auth

import (
	"context"
	"net/http"

	"socialhub_backend/internal/model"
)

// Provider resolves the session behind a request's credentials. It returns
// (nil, nil) for anonymous requests. Callers treat any error as anonymous.
type Provider interface {
	GetSession(ctx context.Context, headers http.Header) (*model.Session, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, headers http.Header) (*model.Session, error)

func (f ProviderFunc) GetSession(ctx context.Context, headers http.Header) (*model.Session, error) {
	return f(ctx, headers)
}
