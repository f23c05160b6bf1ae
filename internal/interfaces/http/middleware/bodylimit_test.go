package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type noteInput struct {
	Notes string `json:"notes" binding:"required"`
}

func newBodyLimitRouter(limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()
	router := gin.New()
	router.Use(BodyLimit(limit))
	router.POST("/orders", func(c *gin.Context) {
		var in noteInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.String(http.StatusOK, in.Notes)
	})
	return router
}

func TestBodyLimit_AllowsSmallBody(t *testing.T) {
	router := newBodyLimitRouter(1024)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"notes":"sin nueces"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sin nueces", w.Body.String())
}

func TestBodyLimit_RejectsDeclaredLength(t *testing.T) {
	router := newBodyLimitRouter(32)

	body := `{"notes":"` + strings.Repeat("x", 100) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"Request body exceeds maximum allowed size"}`, w.Body.String())
}

func TestBodyLimit_RejectsChunkedBodyOnRead(t *testing.T) {
	router := newBodyLimitRouter(32)

	body := `{"notes":"` + strings.Repeat("x", 100) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"Request body exceeds maximum allowed size"}`, w.Body.String())
}

func TestBodyLimit_IgnoresBodylessRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodyLimit(1))
	router.GET("/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
