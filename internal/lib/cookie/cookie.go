// Package cookie собирает HTTP cookie для сессии в одном месте,
// чтобы register, login и logout выставляли их одинаково.
package cookie

import (
	"net/http"
	"time"

	"github.com/magabrotheeeer/speedcode-backend/internal/config"
)

// Session возвращает HttpOnly cookie с токеном сессии.
// maxAge == 0 даёт браузерную cookie, живущую до закрытия окна.
// SameSite=None допустим только вместе с Secure, иначе браузеры
// отбрасывают cookie, поэтому без Secure остаётся Lax.
func Session(cfg config.Session, token string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.CookieSecure {
		c.SameSite = http.SameSiteNoneMode
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge.Seconds())
	}
	return c
}

// Expired возвращает cookie, немедленно удаляющую сессию на клиенте.
func Expired(cfg config.Session) *http.Cookie {
	c := Session(cfg, "", 0)
	c.MaxAge = -1
	return c
}
