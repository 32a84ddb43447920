package domain

import (
	"time"

	"github.com/google/uuid"
)

// LikeRecord is the single row kept per unordered user pair. UserA and
// UserB stay in first-seen order so the acceptance flags keep their
// meaning; uniqueness is enforced on the canonical (sorted) pair.
type LikeRecord struct {
	ID            uuid.UUID `json:"id"`
	UserA         string    `json:"user_a"`
	UserB         string    `json:"user_b"`
	UserAAccepted bool      `json:"user_a_accepted"`
	UserBAccepted bool      `json:"user_b_accepted"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsMutual reports whether both sides have liked each other.
func (r *LikeRecord) IsMutual() bool {
	return r.UserAAccepted && r.UserBAccepted
}

// Involves reports whether the record belongs to user's pair.
func (r *LikeRecord) Involves(user string) bool {
	return r.UserA == user || r.UserB == user
}

// Counterpart returns the other side of the pair relative to user.
func (r *LikeRecord) Counterpart(user string) string {
	if r.UserA == user {
		return r.UserB
	}
	return r.UserA
}

// AcceptedBy reports whether user's side of the record has liked.
func (r *LikeRecord) AcceptedBy(user string) bool {
	if r.UserA == user {
		return r.UserAAccepted
	}
	if r.UserB == user {
		return r.UserBAccepted
	}
	return false
}

// LikeReceived is a one-sided like awaiting the recipient's answer,
// enriched with the sender's profile.
type LikeReceived struct {
	Profile ProfileSummary `json:"profile"`
	LikedAt time.Time      `json:"liked_at"`
}

// MatchSummary is a mutual match enriched with the counterpart's profile.
type MatchSummary struct {
	Profile   ProfileSummary `json:"profile"`
	MatchedAt time.Time      `json:"matched_at"`
}
