package repository

import (
	"context"
	"time"

	"github.com/sakif/portfolio-api/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

// ProfileRow is a profiles row as stored: Skills is the raw JSON text.
// Decoding it is the service layer's job, so a corrupted value surfaces as
// a distinct error instead of failing the scan.
type ProfileRow struct {
	ID         int64
	Name       string
	Bio        string
	Skills     string
	Phone      string
	GitHub     string
	Projects   string
	Experience string
	Education  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProfileRepository stores profile rows. The "current" profile is the row
// with the latest updated_at; older rows are kept as history.
type ProfileRepository interface {
	// CreateProfile inserts a new row and fills in ID and timestamps.
	CreateProfile(ctx context.Context, row *ProfileRow) error
	// SeedProfile inserts row only if no profile exists yet.
	SeedProfile(ctx context.Context, row *ProfileRow) (bool, error)
	GetProfileByID(ctx context.Context, id int64) (*ProfileRow, error)
	GetCurrentProfile(ctx context.Context) (*ProfileRow, error)
	// UpdateCurrentProfile overwrites the current row and returns its ID.
	UpdateCurrentProfile(ctx context.Context, row *ProfileRow) (int64, error)
	ListProfiles(ctx context.Context, opts ListOptions) ([]ProfileRow, error)
	CountProfiles(ctx context.Context) (int, error)
}

// ContactRepository is append-only: there is no update or delete.
type ContactRepository interface {
	CreateMessage(ctx context.Context, msg *model.ContactMessage) error
	ListMessages(ctx context.Context, opts ListOptions) ([]model.ContactMessage, error)
	CountMessages(ctx context.Context) (int, error)
}
