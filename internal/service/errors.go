package service

import "errors"

// Not-found conditions, surfaced to the caller and never retried.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrFreetNotFound      = errors.New("freet not found")
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrFeedNotFound is a precondition violation: every account gets its
	// feed row at registration, so a missing row during fan-out means the
	// lifecycle contract was broken. It must be reported, never skipped.
	ErrFeedNotFound = errors.New("feed not found")
)

// Relationship violations, rejected before any edge is written.
var (
	ErrFollowSelf       = errors.New("cannot follow self")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
)

// Validation failures, rejected before any mutation occurs.
var (
	ErrEmptyContent    = errors.New("content must not be empty")
	ErrContentTooLong  = errors.New("content exceeds 140 characters")
	ErrReadmoreTooLong = errors.New("readmore exceeds 600 characters")
	ErrBadCategory     = errors.New("category must be 1-24 characters")
	ErrBadName         = errors.New("name must be 1-64 characters")
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthor          = errors.New("only the author may do that")
	ErrAlreadyLiked       = errors.New("freet already liked")
	ErrNotLiked           = errors.New("freet not liked")
	ErrAlreadyRefreeted   = errors.New("freet already refreeted")
	ErrCollectionExists   = errors.New("collection name already in use")
)
