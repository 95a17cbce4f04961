package sqlite

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/repository"
)

// TESTING WITH IN-MEMORY SQLITE:
// ":memory:" gives every test its own fresh, throwaway database.
// t.Helper() makes failures point at the caller's line, not this helper.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestProfile(t *testing.T, db *DB, name string) *repository.ProfileRow {
	t.Helper()
	row := &repository.ProfileRow{Name: name, Skills: `["Go"]`}
	if err := db.CreateProfile(context.Background(), row); err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return row
}

// setUpdatedAt rewrites a row's updated_at so ordering tests don't depend on
// how fast the clock ticks between inserts.
func setUpdatedAt(t *testing.T, db *DB, id int64, ts time.Time) {
	t.Helper()
	if _, err := db.conn.Exec(`UPDATE profiles SET updated_at = ? WHERE id = ?`, ts.UTC(), id); err != nil {
		t.Fatalf("setting updated_at: %v", err)
	}
}

// =========================================================================
// CREATE
// =========================================================================

func TestCreateProfile(t *testing.T) {
	db := newTestDB(t)

	row := &repository.ProfileRow{
		Name:   "Ann Lee",
		Bio:    "Backend developer",
		Skills: `["Go","SQL"]`,
		GitHub: "https://github.com/annlee",
	}
	if err := db.CreateProfile(context.Background(), row); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	if row.ID == 0 {
		t.Error("CreateProfile() did not set row.ID")
	}
	if row.CreatedAt.IsZero() || row.UpdatedAt.IsZero() {
		t.Error("CreateProfile() did not set timestamps")
	}

	found, err := db.GetProfileByID(context.Background(), row.ID)
	if err != nil {
		t.Fatalf("GetProfileByID() error = %v", err)
	}
	if found.Name != "Ann Lee" || found.Skills != `["Go","SQL"]` || found.GitHub != "https://github.com/annlee" {
		t.Errorf("GetProfileByID() = %+v, want the inserted values", found)
	}
	if !found.CreatedAt.Equal(row.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", found.CreatedAt, row.CreatedAt)
	}
}

func TestCreateProfile_AppendsRows(t *testing.T) {
	db := newTestDB(t)

	first := createTestProfile(t, db, "first")
	second := createTestProfile(t, db, "second")

	if first.ID == second.ID {
		t.Fatalf("both rows got ID %d", first.ID)
	}
	n, err := db.CountProfiles(context.Background())
	if err != nil {
		t.Fatalf("CountProfiles() error = %v", err)
	}
	if n != 2 {
		t.Errorf("CountProfiles() = %d, want 2", n)
	}
}

// =========================================================================
// SEED
// =========================================================================

func TestSeedProfile_OnlyWhenEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seeded, err := db.SeedProfile(ctx, &repository.ProfileRow{Name: "Default", Skills: `[]`})
	if err != nil {
		t.Fatalf("SeedProfile() error = %v", err)
	}
	if !seeded {
		t.Fatal("SeedProfile() on empty table = false, want true")
	}

	seeded, err = db.SeedProfile(ctx, &repository.ProfileRow{Name: "Again", Skills: `[]`})
	if err != nil {
		t.Fatalf("second SeedProfile() error = %v", err)
	}
	if seeded {
		t.Error("second SeedProfile() = true, want false")
	}

	n, _ := db.CountProfiles(ctx)
	if n != 1 {
		t.Errorf("CountProfiles() = %d, want 1", n)
	}
	current, err := db.GetCurrentProfile(ctx)
	if err != nil {
		t.Fatalf("GetCurrentProfile() error = %v", err)
	}
	if current.Name != "Default" {
		t.Errorf("current Name = %q, want %q", current.Name, "Default")
	}
}

// =========================================================================
// CURRENT PROFILE
// =========================================================================

func TestGetCurrentProfile_Empty(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetCurrentProfile(context.Background())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetCurrentProfile() error = %v, want ErrNotFound", err)
	}
}

func TestGetCurrentProfile_LatestUpdatedAtWins(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	a := createTestProfile(t, db, "a")
	b := createTestProfile(t, db, "b")
	c := createTestProfile(t, db, "c")

	// "b" is the most recently updated, even though "c" was inserted last.
	setUpdatedAt(t, db, a.ID, base)
	setUpdatedAt(t, db, b.ID, base.Add(2*time.Hour))
	setUpdatedAt(t, db, c.ID, base.Add(time.Hour))

	current, err := db.GetCurrentProfile(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentProfile() error = %v", err)
	}
	if current.ID != b.ID {
		t.Errorf("current ID = %d (%s), want %d (b)", current.ID, current.Name, b.ID)
	}
}

func TestGetCurrentProfile_SubSecondOrdering(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	a := createTestProfile(t, db, "a")
	b := createTestProfile(t, db, "b")
	setUpdatedAt(t, db, a.ID, base.Add(500*time.Millisecond))
	setUpdatedAt(t, db, b.ID, base.Add(450*time.Millisecond))

	current, err := db.GetCurrentProfile(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentProfile() error = %v", err)
	}
	if current.ID != a.ID {
		t.Errorf("current = %s, want a (.5s beats .45s)", current.Name)
	}
}

func TestGetProfileByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetProfileByID(context.Background(), 42)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetProfileByID() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// UPDATE
// =========================================================================

func TestUpdateCurrentProfile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	old := createTestProfile(t, db, "old")
	current := createTestProfile(t, db, "current")
	setUpdatedAt(t, db, old.ID, base)
	setUpdatedAt(t, db, current.ID, base.Add(time.Hour))

	id, err := db.UpdateCurrentProfile(ctx, &repository.ProfileRow{
		Name:   "renamed",
		Skills: `["Rust"]`,
	})
	if err != nil {
		t.Fatalf("UpdateCurrentProfile() error = %v", err)
	}
	if id != current.ID {
		t.Fatalf("UpdateCurrentProfile() id = %d, want %d", id, current.ID)
	}

	got, err := db.GetProfileByID(ctx, id)
	if err != nil {
		t.Fatalf("GetProfileByID() error = %v", err)
	}
	if got.Name != "renamed" || got.Skills != `["Rust"]` {
		t.Errorf("updated row = %+v", got)
	}
	if !got.UpdatedAt.After(base.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v, want it advanced", got.UpdatedAt)
	}

	// The history row is untouched.
	untouched, _ := db.GetProfileByID(ctx, old.ID)
	if untouched.Name != "old" {
		t.Errorf("history row Name = %q, want %q", untouched.Name, "old")
	}
}

func TestUpdateCurrentProfile_EmptyTable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.UpdateCurrentProfile(ctx, &repository.ProfileRow{Name: "ghost", Skills: `[]`})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("UpdateCurrentProfile() error = %v, want ErrNotFound", err)
	}

	n, _ := db.CountProfiles(ctx)
	if n != 0 {
		t.Errorf("CountProfiles() = %d after failed update, want 0", n)
	}
}

// =========================================================================
// LIST
// =========================================================================

func TestListProfiles_Pagination(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	older := createTestProfile(t, db, "older")
	newer := createTestProfile(t, db, "newer")
	setUpdatedAt(t, db, older.ID, base)
	setUpdatedAt(t, db, newer.ID, base.Add(time.Minute))

	page1, err := db.ListProfiles(ctx, repository.ListOptions{Limit: 1, Offset: 0})
	if err != nil {
		t.Fatalf("ListProfiles() page 1 error = %v", err)
	}
	page2, err := db.ListProfiles(ctx, repository.ListOptions{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("ListProfiles() page 2 error = %v", err)
	}

	if len(page1) != 1 || page1[0].ID != newer.ID {
		t.Errorf("page 1 = %+v, want only %q", page1, "newer")
	}
	if len(page2) != 1 || page2[0].ID != older.ID {
		t.Errorf("page 2 = %+v, want only %q", page2, "older")
	}
}

func TestListProfiles_MaxOffsetIsEmpty(t *testing.T) {
	db := newTestDB(t)
	createTestProfile(t, db, "only")

	rows, err := db.ListProfiles(context.Background(), repository.ListOptions{Limit: 10, Offset: math.MaxInt})
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("ListProfiles() at max offset returned %d rows, want 0", len(rows))
	}
}

func TestListProfiles_DefaultLimit(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 12; i++ {
		createTestProfile(t, db, "profile")
	}

	rows, err := db.ListProfiles(context.Background(), repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(rows) != 10 {
		t.Errorf("ListProfiles() default returned %d rows, want 10", len(rows))
	}
}

func TestListProfiles_NoUpperBound(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 150; i++ {
		createTestProfile(t, db, "profile")
	}

	rows, err := db.ListProfiles(context.Background(), repository.ListOptions{Limit: 1000})
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(rows) != 150 {
		t.Errorf("ListProfiles() returned %d rows, want 150", len(rows))
	}
}

func TestClosedDB_ReturnsStoreError(t *testing.T) {
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	db.Close()

	_, err = db.GetCurrentProfile(context.Background())
	if !errors.Is(err, apperror.ErrStore) {
		t.Errorf("GetCurrentProfile() on closed db error = %v, want ErrStore", err)
	}
}
