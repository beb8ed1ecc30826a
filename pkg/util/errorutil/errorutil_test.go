package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/kanban-service/internal/domain"
)

func TestToDomainErrorBusinessCodes(t *testing.T) {
	cases := []struct {
		code   domain.ErrorCode
		status int
	}{
		{domain.CodeInvalidInput, http.StatusBadRequest},
		{domain.CodeColumnNotFound, http.StatusNotFound},
		{domain.CodeTagNotFound, http.StatusNotFound},
		{domain.CodeTicketAlreadyClosed, http.StatusConflict},
		{domain.CodeTicketNotClosed, http.StatusConflict},
		{domain.CodeTagAlreadyExists, http.StatusConflict},
		{domain.CodeSameColumn, http.StatusConflict},
		{domain.CodeSameAssignee, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			out := ToDomainError(domain.NewError(tc.code, "boom"))
			require.NotNil(t, out)
			assert.Equal(t, string(tc.code), out.Code)
			assert.Equal(t, tc.status, out.HTTPStatus)
			assert.Equal(t, "boom", out.Message)
		})
	}
}

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewDomainError("CONFLICT", "taken", http.StatusConflict, nil)
	assert.Same(t, original, ToDomainError(original))
}

func TestToDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("create ticket: %w", domain.NewError(domain.CodeSameColumn, "already there"))
	out := ToDomainError(wrapped)
	require.NotNil(t, out)
	assert.Equal(t, string(domain.CodeSameColumn), out.Code)
}

func TestToDomainErrorValidation(t *testing.T) {
	err := &domain.ValidationError{Field: "title", Message: "must not be empty"}
	out := ToDomainError(err)
	require.NotNil(t, out)
	assert.Equal(t, "VALIDATION_FAILED", out.Code)
	assert.Equal(t, http.StatusBadRequest, out.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	out := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, out)
	assert.Equal(t, "NOT_FOUND", out.Code)
	assert.Equal(t, http.StatusNotFound, out.HTTPStatus)
}

func TestToDomainErrorUnknown(t *testing.T) {
	out := ToDomainError(errors.New("disk on fire"))
	require.NotNil(t, out)
	assert.Equal(t, "INTERNAL_ERROR", out.Code)
	assert.Equal(t, http.StatusInternalServerError, out.HTTPStatus)
	assert.Equal(t, "internal server error", out.Message, "internal detail never leaks")
}
