package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
)

func (s *Server) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
	}
}
