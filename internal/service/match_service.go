package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MateoL17/LinKage/internal/domain"
	"github.com/MateoL17/LinKage/internal/repository"
)

var (
	ErrSelfLike    = errors.New("cannot like yourself")
	ErrUnknownUser = errors.New("user not found")
)

// LikeOutcome is what a like call reports back: the resulting record,
// whether the pair is now mutual, and whether it already was before the
// call. A newly completed match is exactly the IsMutual && !WasAlreadyMutual
// combination.
type LikeOutcome struct {
	Record           *domain.LikeRecord `json:"record"`
	IsMutual         bool               `json:"is_mutual"`
	WasAlreadyMutual bool               `json:"was_already_mutual"`
}

// MatchService owns the reciprocity state machine. All like writes go
// through Like; nothing else mutates the ledger.
type MatchService struct {
	ledger   repository.LikeLedger
	userRepo repository.UserRepository
	notifier Notifier
}

func NewMatchService(ledger repository.LikeLedger, userRepo repository.UserRepository) *MatchService {
	return &MatchService{
		ledger:   ledger,
		userRepo: userRepo,
	}
}

func (s *MatchService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Like records liker's interest in likee and evaluates reciprocity.
func (s *MatchService) Like(ctx context.Context, liker, likee string) (*LikeOutcome, error) {
	if liker == likee {
		return nil, ErrSelfLike
	}

	for _, username := range []string{liker, likee} {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("looking up user: %w", err)
		}
		if user == nil {
			return nil, ErrUnknownUser
		}
	}

	rec, wasMutual, err := s.ledger.RecordLike(ctx, liker, likee)
	if err != nil {
		return nil, fmt.Errorf("recording like: %w", err)
	}

	outcome := &LikeOutcome{
		Record:           rec,
		IsMutual:         rec.IsMutual(),
		WasAlreadyMutual: wasMutual,
	}

	// Announce the match only on the one-sided → mutual transition, so
	// repeat likes never re-emit it.
	if outcome.IsMutual && !outcome.WasAlreadyMutual && s.notifier != nil {
		s.notifier.NotifyNewMatch(rec)
	}

	return outcome, nil
}

// LikesReceived returns the one-sided likes awaiting user's answer,
// enriched with the sender's profile. Likes from since-deleted users are
// dropped.
func (s *MatchService) LikesReceived(ctx context.Context, user string) ([]domain.LikeReceived, error) {
	recs, err := s.ledger.LikesReceivedBy(ctx, user)
	if err != nil {
		return nil, err
	}

	likes := []domain.LikeReceived{}
	for _, rec := range recs {
		profile, err := s.userRepo.GetByUsername(ctx, rec.Counterpart(user))
		if err != nil {
			return nil, err
		}
		if profile == nil {
			continue
		}
		likes = append(likes, domain.LikeReceived{
			Profile: profile.Summary(),
			LikedAt: rec.CreatedAt,
		})
	}
	return likes, nil
}

// Matches returns user's mutual matches, enriched with the counterpart's
// profile.
func (s *MatchService) Matches(ctx context.Context, user string) ([]domain.MatchSummary, error) {
	recs, err := s.ledger.MatchesFor(ctx, user)
	if err != nil {
		return nil, err
	}

	matches := []domain.MatchSummary{}
	for _, rec := range recs {
		profile, err := s.userRepo.GetByUsername(ctx, rec.Counterpart(user))
		if err != nil {
			return nil, err
		}
		if profile == nil {
			continue
		}
		matches = append(matches, domain.MatchSummary{
			Profile:   profile.Summary(),
			MatchedAt: rec.CreatedAt,
		})
	}
	return matches, nil
}
