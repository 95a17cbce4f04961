package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/model"
	"github.com/sakif/portfolio-api/internal/repository"
	"github.com/sakif/portfolio-api/internal/validate"
)

// =========================================================================
// MOCK REPOSITORIES
// =========================================================================
//
// Hand-written in-memory implementations of the repository interfaces.
// Each mock counts its calls so tests can assert that validation failures
// never reach the store, and carries an injectable err to simulate a
// database that is down.

type mockProfileRepo struct {
	rows   []repository.ProfileRow
	nextID int64
	now    time.Time
	err    error
	calls  int
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *mockProfileRepo) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *mockProfileRepo) CreateProfile(_ context.Context, row *repository.ProfileRow) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.nextID++
	row.ID = m.nextID
	row.CreatedAt = m.tick()
	row.UpdatedAt = row.CreatedAt
	m.rows = append(m.rows, *row)
	return nil
}

func (m *mockProfileRepo) SeedProfile(ctx context.Context, row *repository.ProfileRow) (bool, error) {
	if len(m.rows) > 0 {
		m.calls++
		return false, m.err
	}
	if err := m.CreateProfile(ctx, row); err != nil {
		return false, err
	}
	return true, nil
}

func (m *mockProfileRepo) GetProfileByID(_ context.Context, id int64) (*repository.ProfileRow, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.rows {
		if r.ID == id {
			row := r
			return &row, nil
		}
	}
	return nil, apperror.NotFound("profile")
}

func (m *mockProfileRepo) current() int {
	idx := -1
	for i, r := range m.rows {
		if idx < 0 || !r.UpdatedAt.Before(m.rows[idx].UpdatedAt) {
			idx = i
		}
	}
	return idx
}

func (m *mockProfileRepo) GetCurrentProfile(_ context.Context) (*repository.ProfileRow, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	idx := m.current()
	if idx < 0 {
		return nil, apperror.NotFound("profile")
	}
	row := m.rows[idx]
	return &row, nil
}

func (m *mockProfileRepo) UpdateCurrentProfile(_ context.Context, row *repository.ProfileRow) (int64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	idx := m.current()
	if idx < 0 {
		return 0, apperror.NotFound("profile")
	}
	updated := *row
	updated.ID = m.rows[idx].ID
	updated.CreatedAt = m.rows[idx].CreatedAt
	updated.UpdatedAt = m.tick()
	m.rows[idx] = updated
	return updated.ID, nil
}

func (m *mockProfileRepo) ListProfiles(_ context.Context, opts repository.ListOptions) ([]repository.ProfileRow, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	rows := append([]repository.ProfileRow(nil), m.rows...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].UpdatedAt.After(rows[j].UpdatedAt) })
	return paginate(rows, opts), nil
}

func (m *mockProfileRepo) CountProfiles(_ context.Context) (int, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return len(m.rows), nil
}

type mockContactRepo struct {
	messages []model.ContactMessage
	err      error
	calls    int
}

func (m *mockContactRepo) CreateMessage(_ context.Context, msg *model.ContactMessage) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	msg.ID = int64(len(m.messages) + 1)
	msg.CreatedAt = time.Date(2025, 1, 1, 0, 0, len(m.messages), 0, time.UTC)
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *mockContactRepo) ListMessages(_ context.Context, opts repository.ListOptions) ([]model.ContactMessage, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	msgs := make([]model.ContactMessage, 0, len(m.messages))
	for i := len(m.messages) - 1; i >= 0; i-- {
		msgs = append(msgs, m.messages[i])
	}
	return paginate(msgs, opts), nil
}

func (m *mockContactRepo) CountMessages(_ context.Context) (int, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return len(m.messages), nil
}

func paginate[T any](items []T, opts repository.ListOptions) []T {
	if opts.Offset >= len(items) {
		return []T{}
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}

// =========================================================================
// TEST HELPERS
// =========================================================================

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestValidator(t *testing.T) *validate.Validator {
	t.Helper()
	v, err := validate.New(nil)
	require.NoError(t, err)
	return v
}
