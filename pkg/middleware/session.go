package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
)

const sessionName = "callrep"

// WithCookieSession stores the browsing session in a signed cookie.
func WithCookieSession(secret string, maxAge int) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", MaxAge: maxAge, HttpOnly: true})
	return sessions.Sessions(sessionName, store)
}

// WithMemSession keeps sessions in process memory, used when no secret is
// configured. Sessions do not survive a restart.
func WithMemSession(secret string) gin.HandlerFunc {
	store := memstore.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 0, HttpOnly: true})
	return sessions.Sessions(sessionName, store)
}
