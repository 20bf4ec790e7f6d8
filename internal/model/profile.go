package model

import (
	"errors"
	"fmt"
	"time"
)

// Profile is the per-user record that carries the denormalized social counters.
// UserID is the identifier issued by the external auth service.
type Profile struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"userId"`
	Bio            *string   `db:"bio" json:"bio"`
	AvatarURL      *string   `db:"avatar_url" json:"avatarUrl"`
	Location       *string   `db:"location" json:"location"`
	Website        *string   `db:"website" json:"website"`
	FollowerCount  int       `db:"follower_count" json:"followerCount"`
	FollowingCount int       `db:"following_count" json:"followingCount"`
	PostCount      int       `db:"post_count" json:"postCount"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// ProfileStub stands in for an author whose profile row does not exist yet.
type ProfileStub struct {
	UserID string `json:"userId"`
}

// ProfileView is a profile as seen by a (possibly anonymous) viewer.
type ProfileView struct {
	Profile
	IsFollowing bool `json:"isFollowing"`
}

// MeResponse merges the session user with their profile.
type MeResponse struct {
	SessionUser
	Profile *Profile `json:"profile"`
}

// UpdateProfileRequest is the PATCH /users/me body. Nil fields are left untouched.
type UpdateProfileRequest struct {
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
	AvatarURL *string `json:"avatarUrl"`
}

// Counter names a denormalized counter column on user_profiles.
type Counter string

const (
	CounterFollowers Counter = "follower_count"
	CounterFollowing Counter = "following_count"
	CounterPosts     Counter = "post_count"
)

// Valid reports whether c is a known counter column.
func (c Counter) Valid() bool {
	switch c {
	case CounterFollowers, CounterFollowing, CounterPosts:
		return true
	}
	return false
}

// Profile constraints
const (
	MaxBioLength      = 160
	MaxLocationLength = 100
	MaxWebsiteLength  = 200
)

var (
	ErrUserNotFound    = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrProfileNotFound = fmt.Errorf("%w: profile not found", ErrNotFound)
	ErrBioTooLong      = fmt.Errorf("%w: bio must be at most 160 characters", ErrInvalidOperation)
	ErrLocationTooLong = fmt.Errorf("%w: location must be at most 100 characters", ErrInvalidOperation)
	ErrInvalidWebsite  = fmt.Errorf("%w: website must be a valid URL of at most 200 characters", ErrInvalidOperation)
	ErrInvalidAvatar   = fmt.Errorf("%w: avatarUrl must be a valid URL", ErrInvalidOperation)
	ErrUnknownCounter  = errors.New("unknown profile counter")
)

// Validate checks the provided fields against the profile limits.
func (r UpdateProfileRequest) Validate() error {
	if r.Bio != nil && CharCount(*r.Bio) > MaxBioLength {
		return ErrBioTooLong
	}
	if r.Location != nil && CharCount(*r.Location) > MaxLocationLength {
		return ErrLocationTooLong
	}
	if r.Website != nil && (CharCount(*r.Website) > MaxWebsiteLength || !IsValidURL(*r.Website)) {
		return ErrInvalidWebsite
	}
	if r.AvatarURL != nil && !IsValidURL(*r.AvatarURL) {
		return ErrInvalidAvatar
	}
	return nil
}
