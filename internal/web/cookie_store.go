package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicspark/civic-site/internal/client"
)

// cookieTokenStore keeps the credential token in an HttpOnly browser cookie.
// Writes are visible to later Loads within the same request.
type cookieTokenStore struct {
	c      *gin.Context
	secure bool
	maxAge int

	loaded bool
	token  string
}

func newCookieTokenStore(c *gin.Context, secure bool, maxAge int) *cookieTokenStore {
	return &cookieTokenStore{c: c, secure: secure, maxAge: maxAge}
}

func (s *cookieTokenStore) Load() (string, bool) {
	if !s.loaded {
		s.token, _ = s.c.Cookie(client.TokenKey)
		s.loaded = true
	}
	return s.token, s.token != ""
}

func (s *cookieTokenStore) Save(token string) error {
	s.token, s.loaded = token, true
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(client.TokenKey, token, s.maxAge, "/", "", s.secure, true)
	return nil
}

func (s *cookieTokenStore) Clear() error {
	s.token, s.loaded = "", true
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(client.TokenKey, "", -1, "/", "", s.secure, true)
	return nil
}
