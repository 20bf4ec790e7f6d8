package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/cache"
	"socialhub_backend/internal/metrics"
	"socialhub_backend/internal/model"
)

// GetSessionPath is the auth service endpoint that resolves request credentials.
const GetSessionPath = "/api/auth/get-session"

// RemoteProvider asks the external auth service who a request belongs to,
// caching positive answers for a short window.
type RemoteProvider struct {
	baseURL string
	client  *http.Client
	cache   cache.SessionCache
	ttl     time.Duration
	log     *logrus.Entry
}

// NewRemoteProvider builds a provider for the auth service at baseURL. A nil
// sessionCache disables caching.
func NewRemoteProvider(baseURL string, sessionCache cache.SessionCache, ttl time.Duration) *RemoteProvider {
	if ttl <= 0 {
		ttl = cache.DefaultSessionTTL
	}
	return &RemoteProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		cache:   sessionCache,
		ttl:     ttl,
		log:     logrus.WithField("component", "RemoteSessionProvider"),
	}
}

func (p *RemoteProvider) GetSession(ctx context.Context, headers http.Header) (*model.Session, error) {
	cookie := headers.Get("Cookie")
	authorization := headers.Get("Authorization")
	if cookie == "" && authorization == "" {
		metrics.SessionLookups.WithLabelValues("anonymous").Inc()
		return nil, nil
	}

	fp := fingerprint(cookie, authorization)

	if p.cache != nil {
		session, found, err := p.cache.Get(ctx, fp)
		if err != nil {
			p.log.WithError(err).Warn("Session cache unavailable, asking auth service")
		} else if found {
			metrics.SessionLookups.WithLabelValues("cache_hit").Inc()
			return session, nil
		}
	}

	session, err := p.fetch(ctx, cookie, authorization)
	if err != nil {
		return nil, err
	}
	metrics.SessionLookups.WithLabelValues("remote").Inc()

	if session == nil || session.Expired(time.Now()) {
		return nil, nil
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, fp, session, p.ttl); err != nil {
			p.log.WithError(err).Warn("Failed to cache session")
		}
	}
	return session, nil
}

func (p *RemoteProvider) fetch(ctx context.Context, cookie, authorization string) (*model.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+GetSessionPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	// The auth service answers a literal null for unknown credentials.
	var session *model.Session
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if session != nil && session.User.ID == "" {
		return nil, nil
	}
	return session, nil
}

func fingerprint(cookie, authorization string) string {
	sum := sha256.Sum256([]byte(cookie + "\n" + authorization))
	return hex.EncodeToString(sum[:])
}
