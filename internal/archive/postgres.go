package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Schema creates the results table used by PostgresRepository.
const Schema = `
CREATE TABLE IF NOT EXISTS game_results (
	game_id       TEXT PRIMARY KEY,
	white_id      TEXT NOT NULL,
	white_name    TEXT NOT NULL,
	black_id      TEXT NOT NULL,
	black_name    TEXT NOT NULL,
	result        TEXT NOT NULL,
	result_method TEXT NOT NULL,
	start_fen     TEXT NOT NULL,
	moves_uci     JSONB NOT NULL,
	moves_san     JSONB NOT NULL,
	pgn           TEXT NOT NULL,
	started_at    TIMESTAMPTZ NOT NULL,
	ended_at      TIMESTAMPTZ NOT NULL,
	duration_ms   BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS game_results_white_idx ON game_results (white_id, ended_at DESC);
CREATE INDEX IF NOT EXISTS game_results_black_idx ON game_results (black_id, ended_at DESC);`

// PostgresRepository stores results in PostgreSQL through lib/pq.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository opens a pooled connection and pings it.
func NewPostgresRepository(databaseURL string) (*PostgresRepository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing handle.
func NewPostgresRepositoryFromDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema applies Schema.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *PostgresRepository) SaveResult(ctx context.Context, res *Result) error {
	if r == nil || r.db == nil || res == nil {
		return nil
	}
	stored := res.clone()
	prepare(stored)

	movesUCI, err := json.Marshal(nonNil(stored.MovesUCI))
	if err != nil {
		return fmt.Errorf("marshal moves_uci: %w", err)
	}
	movesSAN, err := json.Marshal(nonNil(stored.MovesSAN))
	if err != nil {
		return fmt.Errorf("marshal moves_san: %w", err)
	}

	const query = `
		INSERT INTO game_results (
			game_id, white_id, white_name, black_id, black_name,
			result, result_method, start_fen, moves_uci, moves_san, pgn,
			started_at, ended_at, duration_ms
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10::jsonb, $11, $12, $13, $14
		) ON CONFLICT (game_id) DO UPDATE SET
			white_id=EXCLUDED.white_id,
			white_name=EXCLUDED.white_name,
			black_id=EXCLUDED.black_id,
			black_name=EXCLUDED.black_name,
			result=EXCLUDED.result,
			result_method=EXCLUDED.result_method,
			start_fen=EXCLUDED.start_fen,
			moves_uci=EXCLUDED.moves_uci,
			moves_san=EXCLUDED.moves_san,
			pgn=EXCLUDED.pgn,
			started_at=EXCLUDED.started_at,
			ended_at=EXCLUDED.ended_at,
			duration_ms=EXCLUDED.duration_ms`

	_, err = r.db.ExecContext(ctx, query,
		stored.GameID,
		stored.WhiteID, stored.WhiteName,
		stored.BlackID, stored.BlackName,
		stored.Result, strings.TrimSpace(stored.Method), stored.StartFEN,
		string(movesUCI), string(movesSAN), stored.PGN,
		stored.StartedAt, stored.EndedAt, stored.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("upsert game result: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT
		game_id, white_id, white_name, black_id, black_name,
		result, result_method, start_fen, moves_uci, moves_san, pgn,
		started_at, ended_at, duration_ms
	FROM game_results`

func (r *PostgresRepository) RecentGames(ctx context.Context, playerID string, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, selectColumns+`
		WHERE white_id = $1 OR black_id = $1
		ORDER BY ended_at DESC
		LIMIT $2`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("select game results: %w", err)
	}
	defer rows.Close()

	out := make([]*Result, 0, limit)
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game results: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Game(ctx context.Context, id string) (*Result, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE game_id = $1`, id)
	res, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return res, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(s scanner) (*Result, error) {
	var (
		res        Result
		movesUCI   []byte
		movesSAN   []byte
		durationMS sql.NullInt64
	)
	if err := s.Scan(
		&res.GameID,
		&res.WhiteID, &res.WhiteName,
		&res.BlackID, &res.BlackName,
		&res.Result, &res.Method, &res.StartFEN,
		&movesUCI, &movesSAN, &res.PGN,
		&res.StartedAt, &res.EndedAt, &durationMS,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan game result: %w", err)
	}
	if durationMS.Valid {
		res.Duration = time.Duration(durationMS.Int64) * time.Millisecond
	}
	if err := json.Unmarshal(movesUCI, &res.MovesUCI); err != nil {
		return nil, fmt.Errorf("unmarshal moves_uci: %w", err)
	}
	if err := json.Unmarshal(movesSAN, &res.MovesSAN); err != nil {
		return nil, fmt.Errorf("unmarshal moves_san: %w", err)
	}
	return &res, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
