package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pharma/backend/internal/domain/shared"
)

func serveWithError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	h := &BaseHandler{}
	engine.GET("/", func(c *gin.Context) {
		h.HandleError(c, err)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestBaseHandler_HandleError_NotFound(t *testing.T) {
	w := serveWithError(t, shared.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestBaseHandler_HandleError_WrappedDomainError(t *testing.T) {
	err := fmt.Errorf("%w: product abc short by 3", shared.ErrInsufficientStock)
	w := serveWithError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INSUFFICIENT_STOCK")
}

func TestBaseHandler_HandleError_ValidationCode(t *testing.T) {
	err := shared.NewDomainError("INVALID_VALUATION_METHOD", "Unknown valuation method: random")
	w := serveWithError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INVALID_INPUT")
}

func TestBaseHandler_HandleError_UnknownError(t *testing.T) {
	w := serveWithError(t, fmt.Errorf("driver: bad connection"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INTERNAL")
	assert.NotContains(t, w.Body.String(), "bad connection")
}
