package handlers

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/willtroppe/callrep/internal/workflow"
)

const sessionTokenKey = "workflow_token"

// SessionRegistry holds the in-memory calling session of each browser,
// keyed by an opaque token carried in the cookie session. Idle sessions
// are evicted after the configured TTL; the next request simply starts a
// fresh one.
type SessionRegistry struct {
	states *cache.Cache
	ttl    time.Duration
}

func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		states: cache.New(ttl, 10*time.Minute),
		ttl:    ttl,
	}
}

// Acquire returns the calling session for this request, creating one when
// none exists. The token comes from the cookie session; an X-Session-ID
// header overrides it so non-browser clients can pin a session. Every hit
// refreshes the TTL.
func (r *SessionRegistry) Acquire(c *gin.Context) *workflow.State {
	token := c.GetHeader("X-Session-ID")
	if token == "" {
		session := sessions.Default(c)
		if v, ok := session.Get(sessionTokenKey).(string); ok && v != "" {
			token = v
		} else {
			token = uuid.NewString()
			session.Set(sessionTokenKey, token)
			// cookie write failures are non-fatal: the caller just gets a
			// new session next time
			_ = session.Save()
		}
	}

	if cached, ok := r.states.Get(token); ok {
		state := cached.(*workflow.State)
		r.states.Set(token, state, r.ttl)
		return state
	}

	state := workflow.NewState()
	r.states.Set(token, state, r.ttl)
	return state
}

// Len reports how many live sessions the registry holds.
func (r *SessionRegistry) Len() int {
	return r.states.ItemCount()
}
