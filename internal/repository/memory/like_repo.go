package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MateoL17/LinKage/internal/domain"
	"github.com/google/uuid"
)

type LikeRepo struct {
	mu      sync.Mutex
	records map[string]*domain.LikeRecord // keyed by canonical pair
}

func NewLikeRepo() *LikeRepo {
	return &LikeRepo{records: make(map[string]*domain.LikeRecord)}
}

func (r *LikeRepo) RecordLike(_ context.Context, liker, likee string) (*domain.LikeRecord, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := domain.ConversationKey(liker, likee)
	rec, ok := r.records[key]
	if !ok || !rec.Active {
		rec = &domain.LikeRecord{
			ID:            uuid.New(),
			UserA:         liker,
			UserB:         likee,
			UserAAccepted: true,
			Active:        true,
			CreatedAt:     time.Now(),
		}
		r.records[key] = rec
		out := *rec
		return &out, false, nil
	}

	wasMutual := rec.IsMutual()
	if rec.UserA == liker {
		rec.UserAAccepted = true
	} else if rec.UserB == liker {
		rec.UserBAccepted = true
	}
	out := *rec
	return &out, wasMutual, nil
}

func (r *LikeRepo) FindRecord(_ context.Context, userX, userY string) (*domain.LikeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[domain.ConversationKey(userX, userY)]
	if !ok || !rec.Active {
		return nil, nil
	}
	out := *rec
	return &out, nil
}

func (r *LikeRepo) LikesReceivedBy(_ context.Context, user string) ([]domain.LikeRecord, error) {
	return r.filter(func(rec *domain.LikeRecord) bool {
		return rec.Involves(user) && !rec.AcceptedBy(user) && rec.AcceptedBy(rec.Counterpart(user))
	}), nil
}

func (r *LikeRepo) MatchesFor(_ context.Context, user string) ([]domain.LikeRecord, error) {
	return r.filter(func(rec *domain.LikeRecord) bool {
		return rec.Involves(user) && rec.IsMutual()
	}), nil
}

func (r *LikeRepo) filter(keep func(*domain.LikeRecord) bool) []domain.LikeRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var recs []domain.LikeRecord
	for _, rec := range r.records {
		if rec.Active && keep(rec) {
			recs = append(recs, *rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs
}
