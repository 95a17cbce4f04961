package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/model"
)

func newContactService(t *testing.T) (*ContactService, *mockContactRepo) {
	t.Helper()
	repo := &mockContactRepo{}
	return NewContactService(repo, newTestValidator(t), discardLogger()), repo
}

func TestContactService_Submit(t *testing.T) {
	svc, repo := newContactService(t)

	msg, err := svc.Submit(context.Background(), model.ContactInput{
		Name:    "  Jo Doe ",
		Email:   "jo@example.com",
		Message: "Hello there, nice site!",
	})
	require.NoError(t, err)

	assert.NotZero(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())
	assert.Equal(t, "Jo Doe", msg.Name)
	require.Len(t, repo.messages, 1)
	assert.Equal(t, "Hello there, nice site!", repo.messages[0].Message)
}

func TestContactService_SubmitInvalid(t *testing.T) {
	tests := []struct {
		name      string
		input     model.ContactInput
		wantField []string
	}{
		{
			name:      "message too short",
			input:     model.ContactInput{Name: "Jo Doe", Email: "jo@example.com", Message: "too short"},
			wantField: []string{"message"},
		},
		{
			name:      "message padded with spaces is measured after trim",
			input:     model.ContactInput{Name: "Jo Doe", Email: "jo@example.com", Message: "   123456789   "},
			wantField: []string{"message"},
		},
		{
			name:      "every field wrong",
			input:     model.ContactInput{Name: "J", Email: "nope", Message: strings.Repeat("x", 1001)},
			wantField: []string{"name", "email", "message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newContactService(t)

			_, err := svc.Submit(context.Background(), tt.input)

			var verr *apperror.ValidationError
			require.True(t, errors.As(err, &verr), "err = %v", err)
			fields := make([]string, 0, len(verr.Violations))
			for _, v := range verr.Violations {
				fields = append(fields, v.Field)
			}
			assert.Equal(t, tt.wantField, fields)
			assert.Zero(t, repo.calls, "store must not be called when validation fails")
		})
	}
}

func TestContactService_ListNewestFirst(t *testing.T) {
	svc, _ := newContactService(t)
	ctx := context.Background()

	for _, name := range []string{"First Sender", "Second Sender", "Third Sender"} {
		_, err := svc.Submit(ctx, model.ContactInput{Name: name, Email: "a@b.co", Message: "Hello there, friend"})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, model.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "Third Sender", page.Items[0].Name)
	assert.Equal(t, model.Pagination{Page: 1, Limit: 2, Total: 3, Pages: 2}, page.Pagination)
}

func TestContactService_ListEmpty(t *testing.T) {
	svc, _ := newContactService(t)

	page, err := svc.List(context.Background(), model.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Pagination.Total)
	assert.Equal(t, 0, page.Pagination.Pages)
}

func TestContactService_StoreFailure(t *testing.T) {
	svc, repo := newContactService(t)
	repo.err = apperror.Store("inserting contact message", errors.New("database is locked"))

	_, err := svc.Submit(context.Background(), model.ContactInput{
		Name: "Jo Doe", Email: "jo@example.com", Message: "Hello there, nice site!",
	})
	assert.True(t, errors.Is(err, apperror.ErrStore))
}
