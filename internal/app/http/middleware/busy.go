package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// BusyGuard allows one in-flight mutating request per identity, the server
// side counterpart of disabling the submit button. It does not coordinate
// between different identities.
type BusyGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewBusyGuard() *BusyGuard {
	return &BusyGuard{active: map[string]struct{}{}}
}

func (g *BusyGuard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

func (g *BusyGuard) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}

func (g *BusyGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(CtxEmail)
		if !g.acquire(key) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Another change is still in progress",
				"busy":  true,
			})
			return
		}
		// released on every exit path, panics included
		defer g.release(key)
		c.Next()
	}
}
