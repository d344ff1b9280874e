package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/pathforge/roadmap-backend/internal/pkg/errors"
	"github.com/pathforge/roadmap-backend/internal/services"
)

func respond(t *testing.T, err error) (int, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondServiceError(c, err)

	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec.Code, envelope
}

func TestRespondServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", pkgerrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{"wrapped not found", errors.Join(errors.New("lookup"), pkgerrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{"forbidden", pkgerrors.ErrUnauthorized, http.StatusForbidden, "forbidden"},
		{"parse error", &services.ParseError{Err: errors.New("bad json")}, http.StatusBadGateway, "roadmap_generation_failed"},
		{"validation error", &services.ValidationError{Reason: "invalid roadmap structure"}, http.StatusBadGateway, "roadmap_generation_failed"},
		{"field error", &services.FieldError{Entity: "milestone", Field: "title", Index: 2}, http.StatusBadGateway, "roadmap_generation_failed"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, envelope := respond(t, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, envelope.Error.Code)
			assert.NotEmpty(t, envelope.Error.Message)
		})
	}
}
