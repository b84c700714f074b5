package store

import (
	"context"

	"photo-booking-api/internal/model"
)

func (s *Store) CreatePackage(ctx context.Context, p *model.Package) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO packages (id, photographer_email, price_cents, items)
		 VALUES ($1,$2,$3,$4)`,
		p.ID, p.PhotographerEmail, p.PriceCents, p.Items,
	)
	return pgErr(err)
}

func (s *Store) PackageByID(ctx context.Context, id string) (*model.Package, error) {
	p := &model.Package{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, photographer_email, price_cents, items, created_at
		 FROM packages WHERE id = $1`, id,
	).Scan(&p.ID, &p.PhotographerEmail, &p.PriceCents, &p.Items, &p.CreatedAt)
	if err != nil {
		return nil, pgErr(err)
	}
	return p, nil
}

func (s *Store) PackagesByPhotographer(ctx context.Context, photographer string) ([]model.Package, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, photographer_email, price_cents, items, created_at
		 FROM packages WHERE photographer_email = $1 ORDER BY created_at`, photographer)
	if err != nil {
		return nil, pgErr(err)
	}
	defer rows.Close()

	var out []model.Package
	for rows.Next() {
		var p model.Package
		if err := rows.Scan(&p.ID, &p.PhotographerEmail, &p.PriceCents, &p.Items, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
