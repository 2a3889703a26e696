package postgres

import (
	"context"
	"fmt"

	"github.com/aioreal/backend/internal/game"
	"github.com/aioreal/backend/internal/web"
)

type ScoreRepository struct {
	db *DB
}

func NewScoreRepository(db *DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) CreatePlayer(ctx context.Context, username, country string) (string, error) {
	var id string
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO players (username, country) VALUES ($1, NULLIF($2, '')) RETURNING id`,
		username, country,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create player: %w", err)
	}
	return id, nil
}

func (r *ScoreRepository) CreateScore(ctx context.Context, playerID string, sum game.Summary) (string, error) {
	var id string
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO scores (player_id, total_score, correct_count, total_images, accuracy, avg_time)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		playerID, sum.TotalScore, sum.CorrectCount, sum.TotalImages, sum.Accuracy, sum.AvgTime,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create score: %w", err)
	}
	return id, nil
}

// CountGreater counts persisted scores strictly above total. Rank is that
// count plus one, computed once at submission time.
func (r *ScoreRepository) CountGreater(ctx context.Context, total int) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM scores WHERE total_score > $1`,
		total,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count greater scores: %w", err)
	}
	return n, nil
}

// Submit persists a finished session and resolves its rank.
func (r *ScoreRepository) Submit(ctx context.Context, username, country string, sum game.Summary) (web.SubmitResult, error) {
	playerID, err := r.CreatePlayer(ctx, username, country)
	if err != nil {
		return web.SubmitResult{}, err
	}
	scoreID, err := r.CreateScore(ctx, playerID, sum)
	if err != nil {
		return web.SubmitResult{}, err
	}
	greater, err := r.CountGreater(ctx, sum.TotalScore)
	if err != nil {
		return web.SubmitResult{}, err
	}
	return web.SubmitResult{PlayerID: playerID, ScoreID: scoreID, Rank: greater + 1}, nil
}

// SubmitScore adapts Submit to the game engine's score sink.
func (r *ScoreRepository) SubmitScore(ctx context.Context, username, country string, sum game.Summary) (int, error) {
	res, err := r.Submit(ctx, username, country, sum)
	if err != nil {
		return 0, err
	}
	return res.Rank, nil
}

func (r *ScoreRepository) Leaderboard(ctx context.Context, limit int) ([]web.LeaderboardEntry, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT p.username, p.country, s.total_score, s.accuracy, s.correct_count,
		        s.total_images, s.avg_time, s.created_at
		 FROM scores s
		 JOIN players p ON p.id = s.player_id
		 ORDER BY s.total_score DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	defer rows.Close()

	var out []web.LeaderboardEntry
	for rows.Next() {
		var e web.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Country, &e.Score, &e.Accuracy,
			&e.CorrectCount, &e.TotalImages, &e.AvgTime, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		e.Rank = len(out) + 1
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}
	return out, nil
}
