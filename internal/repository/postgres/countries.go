package postgres

import (
	"context"
	"fmt"

	"github.com/aioreal/backend/internal/web"
)

type CountryRepository struct {
	db *DB
}

func NewCountryRepository(db *DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) ListCountries(ctx context.Context) ([]web.Country, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT name, code, flag FROM countries ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var out []web.Country
	for rows.Next() {
		var c web.Country
		if err := rows.Scan(&c.Name, &c.Code, &c.Flag); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}
	return out, nil
}

func (r *CountryRepository) Upsert(ctx context.Context, name, code, flag string) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO countries (code, name, flag) VALUES ($1, $2, $3)
		 ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, flag = EXCLUDED.flag`,
		code, name, flag,
	)
	if err != nil {
		return fmt.Errorf("upsert country: %w", err)
	}
	return nil
}
