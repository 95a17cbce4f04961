// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services take repository interfaces, never *sqlite.DB, so tests can hand
// them an in-memory mock and swap the store without touching this package.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/model"
	"github.com/sakif/portfolio-api/internal/repository"
	"github.com/sakif/portfolio-api/internal/validate"
)

// ProfileService handles the single "current profile" and its history rows.
type ProfileService struct {
	repo      repository.ProfileRepository
	validator *validate.Validator
	logger    *slog.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo repository.ProfileRepository, v *validate.Validator, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:      repo,
		validator: v,
		logger:    logger,
	}
}

// SeedDefault stores model.DefaultProfile when no profile exists yet.
// Called once while the store is being initialized.
func (s *ProfileService) SeedDefault(ctx context.Context) error {
	row, err := toRow(model.DefaultProfile())
	if err != nil {
		return err
	}

	seeded, err := s.repo.SeedProfile(ctx, row)
	if err != nil {
		return fmt.Errorf("seeding default profile: %w", err)
	}
	if seeded {
		s.logger.Info("default profile inserted", slog.Int64("id", row.ID))
	}
	return nil
}

// Current returns the authoritative profile: the most recently updated row.
//
// Returns apperror.ErrNotFound when no profile exists and
// apperror.ErrDataCorruption when the stored skills are not a JSON array.
func (s *ProfileService) Current(ctx context.Context) (*model.Profile, error) {
	row, err := s.repo.GetCurrentProfile(ctx)
	if err != nil {
		return nil, s.fail("failed to get current profile", err)
	}

	p, err := fromRow(row)
	if err != nil {
		return nil, s.fail("failed to decode current profile", err)
	}
	return p, nil
}

// Create validates in and appends it as a new profile row, which becomes
// the current profile. The returned profile is re-read from the store.
func (s *ProfileService) Create(ctx context.Context, in model.ProfileInput) (*model.Profile, error) {
	in = normalizeProfile(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	row, err := toRow(in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateProfile(ctx, row); err != nil {
		return nil, s.fail("failed to create profile", err)
	}

	created, err := s.repo.GetProfileByID(ctx, row.ID)
	if err != nil {
		return nil, s.fail("failed to re-read created profile", err)
	}

	p, err := fromRow(created)
	if err != nil {
		return nil, s.fail("failed to decode created profile", err)
	}

	s.logger.Info("profile created", slog.Int64("id", p.ID))
	return p, nil
}

// Update validates in and overwrites every field of the current profile.
//
// An empty store yields apperror.ErrNotFound; Update never creates a row.
// Fields missing from in are cleared, matching PUT semantics.
func (s *ProfileService) Update(ctx context.Context, in model.ProfileInput) (*model.Profile, error) {
	in = normalizeProfile(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	row, err := toRow(in)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.UpdateCurrentProfile(ctx, row)
	if err != nil {
		return nil, s.fail("failed to update profile", err)
	}

	updated, err := s.repo.GetProfileByID(ctx, id)
	if err != nil {
		return nil, s.fail("failed to re-read updated profile", err)
	}

	p, err := fromRow(updated)
	if err != nil {
		return nil, s.fail("failed to decode updated profile", err)
	}

	s.logger.Info("profile updated", slog.Int64("id", p.ID))
	return p, nil
}

// List returns one page of all profile rows, most recently updated first.
func (s *ProfileService) List(ctx context.Context, req model.PageRequest) (*model.Page[model.Profile], error) {
	rows, err := s.repo.ListProfiles(ctx, repository.ListOptions{
		Limit:  req.Limit,
		Offset: req.Offset(),
	})
	if err != nil {
		return nil, s.fail("failed to list profiles", err)
	}

	total, err := s.repo.CountProfiles(ctx)
	if err != nil {
		return nil, s.fail("failed to count profiles", err)
	}

	profiles := make([]model.Profile, 0, len(rows))
	for i := range rows {
		p, err := fromRow(&rows[i])
		if err != nil {
			return nil, s.fail("failed to decode profile", err)
		}
		profiles = append(profiles, *p)
	}

	return model.NewPage(profiles, req, total), nil
}

// fail logs err unless it is an ordinary NotFound, and hands it back so the
// caller can `return nil, s.fail(...)`.
func (s *ProfileService) fail(msg string, err error) error {
	if !errors.Is(err, apperror.ErrNotFound) {
		s.logger.Error(msg, slog.String("error", err.Error()))
	}
	return err
}

// normalizeProfile trims every text field. The trimmed value is both what
// gets validated and what gets stored.
func normalizeProfile(in model.ProfileInput) model.ProfileInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Phone = strings.TrimSpace(in.Phone)
	in.GitHub = strings.TrimSpace(in.GitHub)
	in.Projects = strings.TrimSpace(in.Projects)
	in.Experience = strings.TrimSpace(in.Experience)
	in.Education = strings.TrimSpace(in.Education)
	return in
}

func toRow(in model.ProfileInput) (*repository.ProfileRow, error) {
	skills, err := encodeSkills(in.Skills.Values())
	if err != nil {
		return nil, err
	}
	return &repository.ProfileRow{
		Name:       in.Name,
		Bio:        in.Bio,
		Skills:     skills,
		Phone:      in.Phone,
		GitHub:     in.GitHub,
		Projects:   in.Projects,
		Experience: in.Experience,
		Education:  in.Education,
	}, nil
}

func fromRow(row *repository.ProfileRow) (*model.Profile, error) {
	skills, err := decodeSkills(row.Skills)
	if err != nil {
		return nil, err
	}
	return &model.Profile{
		ID:         row.ID,
		Name:       row.Name,
		Bio:        row.Bio,
		Skills:     skills,
		Phone:      row.Phone,
		GitHub:     row.GitHub,
		Projects:   row.Projects,
		Experience: row.Experience,
		Education:  row.Education,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

// encodeSkills stores skills as JSON array text; nil becomes "[]".
func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("encoding skills: %w", err)
	}
	return string(b), nil
}

// decodeSkills parses stored skills text. Empty text and JSON null read as
// no skills; anything that is not an array of strings is corruption.
func decodeSkills(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}

	var skills []string
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return nil, apperror.DataCorruption("profile", fmt.Errorf("decoding skills: %w", err))
	}
	if skills == nil {
		skills = []string{}
	}
	return skills, nil
}
