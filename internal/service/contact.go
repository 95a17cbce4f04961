package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/portfolio-api/internal/model"
	"github.com/sakif/portfolio-api/internal/repository"
	"github.com/sakif/portfolio-api/internal/validate"
)

// ContactService accepts visitor messages and lists them for the owner.
type ContactService struct {
	repo      repository.ContactRepository
	validator *validate.Validator
	logger    *slog.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(repo repository.ContactRepository, v *validate.Validator, logger *slog.Logger) *ContactService {
	return &ContactService{
		repo:      repo,
		validator: v,
		logger:    logger,
	}
}

// Submit validates in and stores it with a server-assigned created_at.
func (s *ContactService) Submit(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	msg := &model.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		s.logger.Error("failed to store contact message",
			slog.String("email", msg.Email),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("contact message received", slog.Int64("id", msg.ID))
	return msg, nil
}

// List returns one page of contact messages, newest first.
func (s *ContactService) List(ctx context.Context, req model.PageRequest) (*model.Page[model.ContactMessage], error) {
	messages, err := s.repo.ListMessages(ctx, repository.ListOptions{
		Limit:  req.Limit,
		Offset: req.Offset(),
	})
	if err != nil {
		s.logger.Error("failed to list contact messages", slog.String("error", err.Error()))
		return nil, err
	}

	total, err := s.repo.CountMessages(ctx)
	if err != nil {
		s.logger.Error("failed to count contact messages", slog.String("error", err.Error()))
		return nil, err
	}

	return model.NewPage(messages, req, total), nil
}
