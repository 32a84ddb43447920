package postgres

import (
	"context"
	"sort"

	"github.com/MateoL17/LinKage/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Append(ctx context.Context, msg *domain.ChatMessage) error {
	query := `
		INSERT INTO messages (id, sender, recipient, body, sent_at, read)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.Sender, msg.Recipient, msg.Body, msg.SentAt, msg.Read,
	)
	return err
}

func (r *MessageRepo) History(ctx context.Context, userX, userY string) ([]domain.ChatMessage, error) {
	// seq is the insertion-order tie-breaker for equal timestamps.
	query := `
		SELECT id, sender, recipient, body, sent_at, read
		FROM messages
		WHERE (sender = $1 AND recipient = $2) OR (sender = $2 AND recipient = $1)
		ORDER BY sent_at ASC, seq ASC`

	rows, err := r.pool.Query(ctx, query, userX, userY)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(
			&msg.ID, &msg.Sender, &msg.Recipient, &msg.Body, &msg.SentAt, &msg.Read,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *MessageRepo) ConversationsFor(ctx context.Context, user string) ([]domain.ConversationSummary, error) {
	query := `
		SELECT DISTINCT ON (counterpart) counterpart, body, sent_at
		FROM (
			SELECT CASE WHEN sender = $1 THEN recipient ELSE sender END AS counterpart,
				body, sent_at, seq
			FROM messages
			WHERE sender = $1 OR recipient = $1
		) t
		WHERE counterpart <> $2 AND counterpart <> '@' || $2
		ORDER BY counterpart, sent_at DESC, seq DESC`

	rows, err := r.pool.Query(ctx, query, user, domain.GeneralRoom)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []domain.ConversationSummary
	for rows.Next() {
		var conv domain.ConversationSummary
		if err := rows.Scan(&conv.Counterpart, &conv.LastBody, &conv.LastAt); err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// DISTINCT ON orders by counterpart; the list itself reads newest
	// conversation first.
	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].LastAt.After(convs[j].LastAt)
	})
	return convs, nil
}

func (r *MessageRepo) MarkConversationRead(ctx context.Context, owner, counterpart string) error {
	query := `
		UPDATE messages SET read = TRUE
		WHERE recipient = $1 AND sender = $2 AND NOT read`
	_, err := r.pool.Exec(ctx, query, owner, counterpart)
	return err
}
