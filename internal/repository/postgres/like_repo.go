package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MateoL17/LinKage/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LikeRepo struct {
	pool *pgxpool.Pool
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

// acceptLike flips the liker's acceptance flag on the existing active
// record for the pair, returning the updated record and the pair's
// mutual state before the update. No row means no record exists yet.
const acceptLikeQuery = `
	WITH prior AS (
		SELECT id, user_a_accepted, user_b_accepted
		FROM likes
		WHERE active AND ((user_a = $1 AND user_b = $2) OR (user_a = $2 AND user_b = $1))
		FOR UPDATE
	)
	UPDATE likes l SET
		user_a_accepted = l.user_a_accepted OR l.user_a = $1,
		user_b_accepted = l.user_b_accepted OR l.user_b = $1
	FROM prior
	WHERE l.id = prior.id
	RETURNING l.id, l.user_a, l.user_b, l.user_a_accepted, l.user_b_accepted, l.active, l.created_at,
		prior.user_a_accepted AND prior.user_b_accepted`

// insertLike creates the first-like record with the liker in the user_a
// position. The conflict target is the canonical-pair unique index, so a
// concurrent insert from the other side yields no row instead of an
// error.
const insertLikeQuery = `
	INSERT INTO likes (id, user_a, user_b, user_a_accepted, user_b_accepted, active, created_at)
	VALUES ($1, $2, $3, TRUE, FALSE, TRUE, $4)
	ON CONFLICT (LEAST(user_a, user_b), GREATEST(user_a, user_b)) WHERE active DO NOTHING
	RETURNING id, user_a, user_b, user_a_accepted, user_b_accepted, active, created_at`

func (r *LikeRepo) RecordLike(ctx context.Context, liker, likee string) (*domain.LikeRecord, bool, error) {
	// Update-then-insert with one retry: if the insert loses a concurrent
	// first-like race, the second pass lands on the winner's row as an
	// acceptance-flag update.
	for attempt := 0; attempt < 2; attempt++ {
		var rec domain.LikeRecord
		var wasMutual bool
		err := r.pool.QueryRow(ctx, acceptLikeQuery, liker, likee).Scan(
			&rec.ID, &rec.UserA, &rec.UserB, &rec.UserAAccepted, &rec.UserBAccepted,
			&rec.Active, &rec.CreatedAt, &wasMutual,
		)
		if err == nil {
			return &rec, wasMutual, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, fmt.Errorf("updating like record: %w", err)
		}

		err = r.pool.QueryRow(ctx, insertLikeQuery, uuid.New(), liker, likee, time.Now()).Scan(
			&rec.ID, &rec.UserA, &rec.UserB, &rec.UserAAccepted, &rec.UserBAccepted,
			&rec.Active, &rec.CreatedAt,
		)
		if err == nil {
			return &rec, false, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, fmt.Errorf("inserting like record: %w", err)
		}
	}
	return nil, false, errors.New("like record upsert did not settle")
}

func (r *LikeRepo) FindRecord(ctx context.Context, userX, userY string) (*domain.LikeRecord, error) {
	query := `
		SELECT id, user_a, user_b, user_a_accepted, user_b_accepted, active, created_at
		FROM likes
		WHERE active AND ((user_a = $1 AND user_b = $2) OR (user_a = $2 AND user_b = $1))`
	var rec domain.LikeRecord
	err := r.pool.QueryRow(ctx, query, userX, userY).Scan(
		&rec.ID, &rec.UserA, &rec.UserB, &rec.UserAAccepted, &rec.UserBAccepted,
		&rec.Active, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &rec, err
}

func (r *LikeRepo) LikesReceivedBy(ctx context.Context, user string) ([]domain.LikeRecord, error) {
	query := `
		SELECT id, user_a, user_b, user_a_accepted, user_b_accepted, active, created_at
		FROM likes
		WHERE active AND (
			(user_a = $1 AND NOT user_a_accepted AND user_b_accepted) OR
			(user_b = $1 AND NOT user_b_accepted AND user_a_accepted)
		)
		ORDER BY created_at DESC`
	return r.listRecords(ctx, query, user)
}

func (r *LikeRepo) MatchesFor(ctx context.Context, user string) ([]domain.LikeRecord, error) {
	query := `
		SELECT id, user_a, user_b, user_a_accepted, user_b_accepted, active, created_at
		FROM likes
		WHERE active AND user_a_accepted AND user_b_accepted AND (user_a = $1 OR user_b = $1)
		ORDER BY created_at DESC`
	return r.listRecords(ctx, query, user)
}

func (r *LikeRepo) listRecords(ctx context.Context, query, user string) ([]domain.LikeRecord, error) {
	rows, err := r.pool.Query(ctx, query, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.LikeRecord
	for rows.Next() {
		var rec domain.LikeRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserA, &rec.UserB, &rec.UserAAccepted, &rec.UserBAccepted,
			&rec.Active, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
