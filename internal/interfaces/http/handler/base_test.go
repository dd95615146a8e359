package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeerp/backend/internal/domain/shared"
	"github.com/tradeerp/backend/internal/interfaces/http/dto"
)

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invoice not found", err: shared.ErrInvoiceNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrCodeInvoiceNotFound},
		{name: "wrapped merchandise not found", err: fmt.Errorf("lookup: %w", shared.ErrMerchandiseNotFound), wantStatus: http.StatusNotFound, wantCode: dto.ErrCodeMerchandiseNotFound},
		{name: "missing region", err: shared.ErrMissingClientRegion, wantStatus: http.StatusBadRequest, wantCode: dto.ErrCodeMissingClientRegion},
		{name: "invalid input", err: shared.ErrInvalidInput.WithMessage("exchangeRate cannot be negative"), wantStatus: http.StatusBadRequest, wantCode: dto.ErrCodeInvalidInput},
		{name: "storage failure", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError, wantCode: dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := newTestRouter()
			r.GET("/test", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := perform(r, http.MethodGet, "/test", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Nil(t, resp.Result)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)
		})
	}

	t.Run("internal errors do not leak details", func(t *testing.T) {
		h := &BaseHandler{}
		r := newTestRouter()
		r.GET("/test", func(c *gin.Context) { h.HandleError(c, errors.New("pq: password authentication failed")) })

		w := perform(r, http.MethodGet, "/test", "")

		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestRequestLang(t *testing.T) {
	r := newTestRouter()
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, requestLang(c, c.GetHeader("X-Explicit"))) })

	assert.Equal(t, "en", perform(r, http.MethodGet, "/test", "", "X-Explicit", "en", "Accept-Language", "zh").Body.String())
	assert.Equal(t, "en", perform(r, http.MethodGet, "/test?lang=en", "", "Accept-Language", "zh").Body.String())
	assert.Equal(t, "en-GB", perform(r, http.MethodGet, "/test", "", "Accept-Language", "en-GB").Body.String())
	assert.Empty(t, perform(r, http.MethodGet, "/test", "").Body.String())
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("startDate", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T00:00:00Z", d.Format("2006-01-02T15:04:05Z07:00"))

	d, err = parseDate("startDate", "2024-03-01T10:00:00+08:00")
	require.NoError(t, err)
	assert.Equal(t, 2, d.UTC().Hour())

	d, err = parseDate("startDate", " ")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseDate("startDate", "03/01/2024")
	assert.ErrorContains(t, err, "startDate")
}
