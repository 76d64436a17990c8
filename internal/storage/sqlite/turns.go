package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/pkg/log"
)

type TurnsRepo struct {
	db *sql.DB
}

func NewTurnsRepo(db *sql.DB) *TurnsRepo {
	return &TurnsRepo{db: db}
}

func (r *TurnsRepo) AddTurn(ctx context.Context, turn core.Turn) error {
	query := `INSERT INTO turns (session_id, mode, query, location, reply) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		turn.SessionID, string(turn.Mode), turn.Query, turn.Location, turn.Reply); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (r *TurnsRepo) GetTurns(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	// Fetch the LAST 'limit' turns by ordering DESC
	query := `SELECT id, session_id, mode, query, location, reply, created_at
	          FROM turns WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var t core.Turn
		var mode string
		var location, reply sql.NullString

		if err := rows.Scan(&t.ID, &t.SessionID, &mode, &t.Query, &location, &reply, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		t.Mode = core.Mode(mode)
		t.Location = location.String
		t.Reply = reply.String
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse back to chronological order
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Msg("loaded turn history")
	return turns, nil
}
