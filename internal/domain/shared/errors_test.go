package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches sentinel through wrapping", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", ErrMerchandiseNotFound)
		assert.True(t, errors.Is(err, ErrMerchandiseNotFound))
		assert.False(t, errors.Is(err, ErrInvoiceNotFound))
	})

	t.Run("custom message keeps the code", func(t *testing.T) {
		err := ErrMerchandiseNotFound.WithMessage("merchandise ABC-1 not found")
		assert.True(t, errors.Is(err, ErrMerchandiseNotFound))
		assert.Equal(t, "merchandise ABC-1 not found", err.Error())
		assert.Equal(t, "MERCHANDISE_NOT_FOUND", err.Code)
	})

	t.Run("plain errors never match", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("NOT_FOUND"), ErrNotFound))
	})
}
