package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// If *DB stops implementing repository.ProfileRepository the build fails here,
// not somewhere far away where the DB is passed to the service.
var _ repository.ProfileRepository = (*DB)(nil)

const profileColumns = `id, name, bio, skills, phone, github, projects, experience, education, created_at, updated_at`

// currentProfileID selects the authoritative row: latest updated_at, with the
// higher id winning a tie.
const currentProfileID = `SELECT id FROM profiles ORDER BY updated_at DESC, id DESC LIMIT 1`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(s rowScanner, p *repository.ProfileRow) error {
	return s.Scan(
		&p.ID, &p.Name, &p.Bio, &p.Skills, &p.Phone, &p.GitHub,
		&p.Projects, &p.Experience, &p.Education,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

// CreateProfile appends a new profile row. History rows are never touched.
//
// Timestamps are set here, in UTC, so updated_at values compare correctly as
// stored text as well as in Go.
func (db *DB) CreateProfile(ctx context.Context, row *repository.ProfileRow) error {
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO profiles (name, bio, skills, phone, github, projects, experience, education, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.Name, row.Bio, row.Skills, row.Phone, row.GitHub,
		row.Projects, row.Experience, row.Education,
		row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return apperror.Store("sqlite: inserting profile", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperror.Store("sqlite: reading inserted profile id", err)
	}
	row.ID = id

	return nil
}

// SeedProfile inserts row only when the profiles table is empty, in one
// statement. It reports whether a row was inserted.
func (db *DB) SeedProfile(ctx context.Context, row *repository.ProfileRow) (bool, error) {
	now := time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO profiles (name, bio, skills, phone, github, projects, experience, education, created_at, updated_at)
		 SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		 WHERE NOT EXISTS (SELECT 1 FROM profiles)`,
		row.Name, row.Bio, row.Skills, row.Phone, row.GitHub,
		row.Projects, row.Experience, row.Education,
		now, now,
	)
	if err != nil {
		return false, apperror.Store("sqlite: seeding profile", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, apperror.Store("sqlite: checking rows affected", err)
	}
	if n == 0 {
		return false, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, apperror.Store("sqlite: reading seeded profile id", err)
	}
	row.ID = id
	row.CreatedAt = now
	row.UpdatedAt = now

	return true, nil
}

// GetProfileByID reads one profile row by primary key.
func (db *DB) GetProfileByID(ctx context.Context, id int64) (*repository.ProfileRow, error) {
	var p repository.ProfileRow

	err := scanProfile(db.conn.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id,
	), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("profile")
		}
		return nil, apperror.Store("sqlite: getting profile", err)
	}

	return &p, nil
}

// GetCurrentProfile reads the authoritative profile row.
func (db *DB) GetCurrentProfile(ctx context.Context) (*repository.ProfileRow, error) {
	var p repository.ProfileRow

	err := scanProfile(db.conn.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY updated_at DESC, id DESC LIMIT 1`,
	), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("profile")
		}
		return nil, apperror.Store("sqlite: getting current profile", err)
	}

	return &p, nil
}

// UpdateCurrentProfile overwrites every field of the authoritative row and
// advances its updated_at.
//
// Choosing the row and updating it happen in the same statement, and
// RETURNING gives back which row that was. No row back means the table is
// empty: that is NotFound, and nothing is inserted.
func (db *DB) UpdateCurrentProfile(ctx context.Context, row *repository.ProfileRow) (int64, error) {
	row.UpdatedAt = time.Now().UTC()

	var id int64
	err := db.conn.QueryRowContext(ctx,
		`UPDATE profiles
		 SET name = ?, bio = ?, skills = ?, phone = ?, github = ?,
		     projects = ?, experience = ?, education = ?, updated_at = ?
		 WHERE id = (`+currentProfileID+`)
		 RETURNING id`,
		row.Name, row.Bio, row.Skills, row.Phone, row.GitHub,
		row.Projects, row.Experience, row.Education,
		row.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperror.NotFound("profile")
		}
		return 0, apperror.Store("sqlite: updating current profile", err)
	}
	row.ID = id

	return id, nil
}

// ListProfiles returns profile rows newest-updated first.
//
// LIMIT/OFFSET pagination: page 3 with 20 per page → LIMIT 20 OFFSET 40.
// There is no upper bound on Limit here; callers decide whether to cap it.
func (db *DB) ListProfiles(ctx context.Context, opts repository.ListOptions) ([]repository.ProfileRow, error) {
	limit, offset := normalize(opts)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles
		 ORDER BY updated_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, apperror.Store("sqlite: listing profiles", err)
	}
	// sql.Rows holds the pool's only connection until it is closed.
	defer rows.Close()

	profiles := make([]repository.ProfileRow, 0, min(limit, 64))
	for rows.Next() {
		var p repository.ProfileRow
		if err := scanProfile(rows, &p); err != nil {
			return nil, apperror.Store("sqlite: scanning profile row", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Store("sqlite: iterating profiles", err)
	}

	return profiles, nil
}

// CountProfiles returns the number of stored profile rows, history included.
func (db *DB) CountProfiles(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return 0, apperror.Store("sqlite: counting profiles", err)
	}
	return n, nil
}

// normalize applies the repository defaults to a ListOptions.
func normalize(opts repository.ListOptions) (limit, offset int) {
	limit = opts.Limit
	if limit <= 0 {
		limit = 10
	}
	offset = opts.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
