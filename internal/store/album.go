package store

import (
	"context"

	"photo-booking-api/internal/model"
)

// UpsertAlbum keeps album names unique per photographer with insert-or-replace
// semantics: re-creating an album just updates its release type.
func (s *Store) UpsertAlbum(ctx context.Context, a *model.Album) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO albums (photographer_email, name, release_type)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (photographer_email, name)
		 DO UPDATE SET release_type = EXCLUDED.release_type`,
		a.PhotographerEmail, a.Name, a.ReleaseType,
	)
	return pgErr(err)
}

// DeleteAlbum removes the album; its photos go with it via FK cascade.
func (s *Store) DeleteAlbum(ctx context.Context, photographer, name string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM albums WHERE photographer_email = $1 AND name = $2`,
		photographer, name)
	if err != nil {
		return pgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AlbumsByPhotographer(ctx context.Context, photographer string) ([]model.Album, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT photographer_email, name, release_type, created_at
		 FROM albums WHERE photographer_email = $1 ORDER BY created_at`, photographer)
	if err != nil {
		return nil, pgErr(err)
	}
	defer rows.Close()

	var out []model.Album
	for rows.Next() {
		var a model.Album
		if err := rows.Scan(&a.PhotographerEmail, &a.Name, &a.ReleaseType, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		photos, err := s.PhotosByAlbum(ctx, photographer, out[i].Name)
		if err != nil {
			return nil, err
		}
		out[i].Photos = photos
	}
	return out, nil
}

func (s *Store) AddPhoto(ctx context.Context, p *model.Photo) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO photos (id, photographer_email, album_name, pathname)
		 VALUES ($1,$2,$3,$4)`,
		p.ID, p.PhotographerEmail, p.AlbumName, p.Pathname,
	)
	return pgErr(err)
}

func (s *Store) PhotosByAlbum(ctx context.Context, photographer, album string) ([]model.Photo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, photographer_email, album_name, pathname
		 FROM photos WHERE photographer_email = $1 AND album_name = $2 ORDER BY id`,
		photographer, album)
	if err != nil {
		return nil, pgErr(err)
	}
	defer rows.Close()

	var out []model.Photo
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.PhotographerEmail, &p.AlbumName, &p.Pathname); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
