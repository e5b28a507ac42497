package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	"github.com/hellosarowarhn-boop/ecomm/internal/domain/services"
	"github.com/hellosarowarhn-boop/ecomm/internal/error/code"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serviceErrorResponse(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)

	handleServiceError(ctx, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"product not found", services.ErrProductNotFound, http.StatusNotFound, code.ErrProductNotFound},
		{"wrapped order not found", fmt.Errorf("load: %w", services.ErrOrderNotFound), http.StatusNotFound, code.ErrOrderNotFound},
		{"too many images", services.ErrTooManyImages, http.StatusBadRequest, code.ErrProductTooManyImages},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, code.ErrAdminPasswordIncorrect},
		{"last super admin", services.ErrLastSuperAdmin, http.StatusBadRequest, code.ErrAdminLastSuperAdmin},
		{"validation", &services.ValidationError{Message: "phone is required"}, http.StatusBadRequest, code.ErrValidation},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, code.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serviceErrorResponse(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, float64(tt.code), body["code"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestHandleServiceErrorHidesInternalDetails(t *testing.T) {
	_, body := serviceErrorResponse(t, errors.New("dial tcp 10.0.0.5:3306: refused"))
	assert.NotContains(t, body["message"], "10.0.0.5")
}

func TestHandleServiceErrorTransition(t *testing.T) {
	status, body := serviceErrorResponse(t, &models.TransitionError{From: models.OrderStatusCanceled, To: models.OrderStatusPending})

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, float64(code.ErrOrderIllegalTransition), body["code"])
	assert.Equal(t, map[string]interface{}{"from": "canceled", "to": "pending"}, body["data"])
}

func TestParseID(t *testing.T) {
	id, ok := parseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, value := range []string{"", "0", "-1", "abc", "99999999999"} {
		_, ok := parseID(value)
		assert.False(t, ok, value)
	}
}

func TestIsPublicOrderLookup(t *testing.T) {
	tests := []struct {
		query  string
		public bool
	}{
		{"phone=0171", true},
		{"phone=0171&status=pending", true},
		{"phone=%20%20", false},
		{"", false},
		{"phone=0171&deleted=true", false},
		{"phone=0171&deleted=", false},
	}

	for _, tt := range tests {
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		ctx.Request = httptest.NewRequest(http.MethodGet, "/api/orders?"+tt.query, nil)
		assert.Equal(t, tt.public, IsPublicOrderLookup(ctx), tt.query)
	}
}
