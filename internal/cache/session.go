package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/model"
)

const (
	// SessionCachePrefix is the key prefix for cached sessions
	SessionCachePrefix = "session:"

	// DefaultSessionTTL matches the auth service's cookie cache window.
	DefaultSessionTTL = 5 * time.Minute
)

// SessionCache stores resolved sessions keyed by a fingerprint of the
// credentials that produced them, so repeated requests skip the auth service.
type SessionCache interface {
	// Get returns (session, found, error). found=false on a miss.
	Get(ctx context.Context, fingerprint string) (*model.Session, bool, error)

	// Set stores a session for at most ttl, and never past the session's own expiry.
	Set(ctx context.Context, fingerprint string, session *model.Session, ttl time.Duration) error

	// Delete drops a cached session, e.g. after sign-out.
	Delete(ctx context.Context, fingerprint string) error
}

// RedisSessionCache implements SessionCache with plain string keys holding JSON.
type RedisSessionCache struct {
	client *redis.Client
	log    *logrus.Entry
}

// NewSessionCache creates a new SessionCache backed by Redis.
func NewSessionCache(client *redis.Client) SessionCache {
	return &RedisSessionCache{
		client: client,
		log:    logrus.WithField("component", "SessionCache"),
	}
}

func sessionKey(fingerprint string) string {
	return SessionCachePrefix + fingerprint
}

func (c *RedisSessionCache) Get(ctx context.Context, fingerprint string) (*model.Session, bool, error) {
	raw, err := c.client.Get(ctx, sessionKey(fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		c.log.WithError(err).Warn("Get failed")
		return nil, false, fmt.Errorf("get session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		// A corrupt entry is treated as a miss and removed.
		c.client.Del(ctx, sessionKey(fingerprint))
		return nil, false, nil
	}

	if session.Expired(time.Now()) {
		c.client.Del(ctx, sessionKey(fingerprint))
		return nil, false, nil
	}

	return &session, true, nil
}

func (c *RedisSessionCache) Set(ctx context.Context, fingerprint string, session *model.Session, ttl time.Duration) error {
	if !session.Session.ExpiresAt.IsZero() {
		if remaining := time.Until(session.Session.ExpiresAt); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := c.client.Set(ctx, sessionKey(fingerprint), raw, ttl).Err(); err != nil {
		c.log.WithError(err).Warn("Set failed")
		return fmt.Errorf("set session: %w", err)
	}

	c.log.WithFields(logrus.Fields{"user": session.User.ID, "ttl": ttl}).Debug("Session cached")
	return nil
}

func (c *RedisSessionCache) Delete(ctx context.Context, fingerprint string) error {
	if err := c.client.Del(ctx, sessionKey(fingerprint)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
