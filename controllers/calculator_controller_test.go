package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func quoteRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cc := NewCalculatorController()
	r.POST("/loans/quote", cc.Quote)
	r.GET("/loans/terms", cc.Terms)
	return r
}

func TestQuoteEndpoint(t *testing.T) {
	r := quoteRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/loans/quote", strings.NewReader(`{"amount":5000,"term_days":30}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Quote struct {
			Principal int `json:"principal"`
			Fee       int `json:"fee"`
			Interest  int `json:"interest"`
			Total     int `json:"total"`
		} `json:"quote"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5000, body.Quote.Principal)
	assert.Equal(t, 250, body.Quote.Fee)
	assert.Equal(t, 1500, body.Quote.Interest)
	assert.Equal(t, 6750, body.Quote.Total)
}

func TestQuoteEndpointRejectsBadTerm(t *testing.T) {
	r := quoteRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/loans/quote", strings.NewReader(`{"amount":5000,"term_days":45}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "terms")
}

func TestQuoteEndpointRequiresBody(t *testing.T) {
	r := quoteRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/loans/quote", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTermsEndpoint(t *testing.T) {
	r := quoteRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/loans/terms", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Terms     []int `json:"terms"`
		MinAmount int   `json:"min_amount"`
		MaxAmount int   `json:"max_amount"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []int{14, 30, 60}, body.Terms)
	assert.Equal(t, 500, body.MinAmount)
	assert.Equal(t, 50000, body.MaxAmount)
}
