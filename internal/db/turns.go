package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TurnRepository handles conversation turn database operations.
type TurnRepository struct {
	pool *pgxpool.Pool
}

// Append inserts a turn at the next sequence number for its conversation.
func (r *TurnRepository) Append(ctx context.Context, turn *ConversationTurn) error {
	query := `
		INSERT INTO conversation_turns (conversation_id, seq, speaker, text, mood, confidence, topic, created_at)
		VALUES (
			$1,
			COALESCE((SELECT MAX(seq) + 1 FROM conversation_turns WHERE conversation_id = $1), 0),
			$2, $3, $4, $5, $6, $7
		)
	`
	_, err := r.pool.Exec(ctx, query,
		turn.ConversationID,
		turn.Speaker,
		turn.Text,
		turn.Mood,
		turn.Confidence,
		turn.Topic,
		turn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting turn: %w", err)
	}
	return nil
}

// List returns all turns for a conversation in sequence order.
func (r *TurnRepository) List(ctx context.Context, conversationID uuid.UUID) ([]ConversationTurn, error) {
	query := `
		SELECT conversation_id, seq, speaker, text, mood, confidence, topic, created_at
		FROM conversation_turns
		WHERE conversation_id = $1
		ORDER BY seq
	`
	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	var turns []ConversationTurn
	for rows.Next() {
		var t ConversationTurn
		if err := rows.Scan(
			&t.ConversationID,
			&t.Seq,
			&t.Speaker,
			&t.Text,
			&t.Mood,
			&t.Confidence,
			&t.Topic,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating turns: %w", err)
	}
	return turns, nil
}
