package store

import (
	"context"

	"photo-booking-api/internal/model"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (email, password_hash, name, phone_number, type, about)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		u.Email, u.PasswordHash, u.Name, u.PhoneNumber, u.Type, u.About,
	)
	return pgErr(err)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT email, password_hash, name, phone_number, type, about, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.Email, &u.PasswordHash, &u.Name, &u.PhoneNumber, &u.Type, &u.About, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, pgErr(err)
	}
	return u, nil
}

func (s *Store) ListPhotographers(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT email, password_hash, name, phone_number, type, about, created_at, updated_at
		 FROM users WHERE type = 'photographer' ORDER BY created_at`)
	if err != nil {
		return nil, pgErr(err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Email, &u.PasswordHash, &u.Name, &u.PhoneNumber,
			&u.Type, &u.About, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) UpdateAbout(ctx context.Context, email, about string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET about = $1, updated_at = NOW() WHERE email = $2`, about, email)
	if err != nil {
		return pgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
