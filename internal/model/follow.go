package model

import (
	"fmt"
	"time"
)

// Follow is one directed edge in the relationship ledger.
type Follow struct {
	ID          string    `db:"id" json:"id"`
	FollowerID  string    `db:"follower_id" json:"followerId"`
	FollowingID string    `db:"following_id" json:"followingId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Follower is an entry of GET /users/{id}/followers.
type Follower struct {
	FollowerID string    `db:"follower_id" json:"followerId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	Profile    *Profile  `db:"-" json:"profile,omitempty"`
}

// Following is an entry of GET /users/{id}/following.
type Following struct {
	FollowingID string    `db:"following_id" json:"followingId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	Profile     *Profile  `db:"-" json:"profile,omitempty"`
}

type FollowToggleResponse struct {
	Following bool `json:"following"`
}

type FollowerListResponse struct {
	Followers  []Follower     `json:"followers"`
	Pagination PaginationMeta `json:"pagination"`
}

type FollowingListResponse struct {
	Following  []Following    `json:"following"`
	Pagination PaginationMeta `json:"pagination"`
}

var (
	ErrCannotFollowSelf = fmt.Errorf("%w: cannot follow yourself", ErrInvalidOperation)
)
