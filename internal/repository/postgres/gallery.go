package postgres

import (
	"context"
	"fmt"

	"github.com/aioreal/backend/internal/web"
)

type GalleryRepository struct {
	db *DB
}

func NewGalleryRepository(db *DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) ListGallery(ctx context.Context, limit int) ([]web.GalleryItem, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, url, username, score, country, created_at
		 FROM gallery_items
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	defer rows.Close()

	var out []web.GalleryItem
	for rows.Next() {
		var item web.GalleryItem
		if err := rows.Scan(&item.ID, &item.URL, &item.Username, &item.Score,
			&item.Country, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan gallery item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gallery: %w", err)
	}
	return out, nil
}

func (r *GalleryRepository) CreateGalleryItem(ctx context.Context, url, username string, score int, country string) (web.GalleryItem, error) {
	var item web.GalleryItem
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO gallery_items (url, username, score, country)
		 VALUES ($1, $2, $3, NULLIF($4, ''))
		 RETURNING id, url, username, score, country, created_at`,
		url, username, score, country,
	).Scan(&item.ID, &item.URL, &item.Username, &item.Score, &item.Country, &item.CreatedAt)
	if err != nil {
		return web.GalleryItem{}, fmt.Errorf("create gallery item: %w", err)
	}
	return item, nil
}
