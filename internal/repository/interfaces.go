package repository

import (
	"context"

	"github.com/MateoL17/LinKage/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ListExcept(ctx context.Context, username string) ([]domain.User, error)
}

// LikeLedger stores one-directional like facts, at most one active
// record per unordered pair.
type LikeLedger interface {
	// RecordLike upserts the like from liker toward likee and returns the
	// resulting record plus whether the pair was already mutual before
	// this call. The upsert is atomic; a concurrent first-like race from
	// both sides is resolved internally, never surfaced.
	RecordLike(ctx context.Context, liker, likee string) (rec *domain.LikeRecord, wasMutual bool, err error)
	// FindRecord returns the active record for the pair in either stored
	// order, or nil when none exists.
	FindRecord(ctx context.Context, userX, userY string) (*domain.LikeRecord, error)
	// LikesReceivedBy returns active records where user is the side that
	// has not accepted yet while the counterpart has.
	LikesReceivedBy(ctx context.Context, user string) ([]domain.LikeRecord, error)
	// MatchesFor returns active mutual records involving user.
	MatchesFor(ctx context.Context, user string) ([]domain.LikeRecord, error)
}

// MessageStore is the durable, time-ordered store of chat messages.
type MessageStore interface {
	Append(ctx context.Context, msg *domain.ChatMessage) error
	// History returns all messages between the two users in either
	// direction, ordered by sent time ascending, insertion order breaking
	// ties.
	History(ctx context.Context, userX, userY string) ([]domain.ChatMessage, error)
	// ConversationsFor groups user's messages by counterpart and returns
	// the most recent exchange per counterpart, newest first. The general
	// room is excluded.
	ConversationsFor(ctx context.Context, user string) ([]domain.ConversationSummary, error)
	// MarkConversationRead flags every message owner received from
	// counterpart as read.
	MarkConversationRead(ctx context.Context, owner, counterpart string) error
}
