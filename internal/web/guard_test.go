package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicspark/civic-site/internal/client"
)

func TestRequireAdminWithoutSessionShowsLoading(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tmpl, err := parseTemplates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	reached := false
	r.GET("/admin/dashboard", RequireAdmin(), func(c *gin.Context) { reached = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Loading")
	assert.Empty(t, w.Header().Get("Location"))
	assert.False(t, reached)
}

func TestBrowser(t *testing.T) {
	cases := []struct{ ua, want string }{
		{"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/125.0 Safari/537.36", "Chrome"},
		{"Mozilla/5.0 (X11; Linux x86_64; rv:126.0) Gecko/20100101 Firefox/126.0", "Firefox"},
		{"Mozilla/5.0 (Macintosh) AppleWebKit/605.1.15 Version/17.4 Safari/605.1.15", "Safari"},
		{"Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/125.0 Safari/537.36 Edg/125.0", "Chrome"},
		{"Edge/18.0", "Edge"},
		{"curl/8.5", "Unknown"},
		{"", "Unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Browser(tc.ua), tc.ua)
	}
}

func TestCookieTokenStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: client.TokenKey, Value: "old"})

	store := newCookieTokenStore(c, true, 3600)
	token, ok := store.Load()
	assert.True(t, ok)
	assert.Equal(t, "old", token)

	require.NoError(t, store.Save("new"))
	token, _ = store.Load()
	assert.Equal(t, "new", token)

	require.NoError(t, store.Clear())
	_, ok = store.Load()
	assert.False(t, ok)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "new", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, -1, cookies[1].MaxAge)
}

func TestMarkdownEscapesRawHTML(t *testing.T) {
	src := "Hello <script>alert(1)</script> **world**"
	out := string(markdown(&src))
	assert.Contains(t, out, "<strong>world</strong>")
	assert.NotContains(t, out, "<script>")
	assert.Equal(t, "", string(markdown(nil)))
}
