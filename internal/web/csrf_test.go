package web_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicspark/civic-site/internal/web"
)

func TestProtectRejectsPostWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := web.NewRouter(web.Config{APIBaseURL: "http://127.0.0.1:1/api"})
	require.NoError(t, err)
	h := web.Protect(router, []byte(strings.Repeat("k", 32)), false, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(url.Values{"name": {"Ana"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contact", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="gorilla.csrf.Token"`)
}
