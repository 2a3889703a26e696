package postgres

import (
	"context"
	"fmt"

	"github.com/aioreal/backend/internal/game"
)

type ImageRepository struct {
	db *DB
}

func NewImageRepository(db *DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) ListByClass(ctx context.Context, isAI bool) ([]game.Image, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, url, is_ai FROM game_images WHERE is_ai = $1`,
		isAI,
	)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var images []game.Image
	for rows.Next() {
		var img game.Image
		if err := rows.Scan(&img.ID, &img.URL, &img.IsAI); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}
	return images, nil
}

func (r *ImageRepository) Create(ctx context.Context, url string, isAI bool, category, description, source string) (string, error) {
	var id string
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO game_images (url, is_ai, category, description, source)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		 RETURNING id`,
		url, isAI, category, description, source,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	return id, nil
}

func (r *ImageRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM game_images`); err != nil {
		return fmt.Errorf("delete images: %w", err)
	}
	return nil
}

func (r *ImageRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM game_images`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return n, nil
}
