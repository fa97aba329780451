package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// SessionCookies writes the token pair as http-only cookies. The refresh
// cookie is only sent back to the API.
type SessionCookies struct {
	Domain string
	Secure bool
}

func NewSessionCookies(domain string, secure bool) *SessionCookies {
	return &SessionCookies{Domain: domain, Secure: secure}
}

func (s *SessionCookies) SetPair(c *gin.Context, access string, aexp time.Time, refresh string, rexp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, access, secondsUntil(aexp), "/", s.Domain, s.Secure, true)
	c.SetCookie(RefreshCookie, refresh, secondsUntil(rexp), "/api", s.Domain, s.Secure, true)
}

func (s *SessionCookies) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, "", -1, "/", s.Domain, s.Secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/api", s.Domain, s.Secure, true)
}

func secondsUntil(exp time.Time) int {
	if sec := int(time.Until(exp).Seconds()); sec > 0 {
		return sec
	}
	return 0
}
