package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Context keys where AuthRequired stores the resolved identity.
const (
	CtxUserID        = "UserID"
	CtxUsername      = "Username"
	CtxDiscriminator = "Discriminator"
)

// AuthRequired resolves the caller's identity, either from the gateway's
// Bearer JWT (the normal bot path) or from the cookie session set by /login
// (the browser/Swagger path). Requests without either are rejected.
func AuthRequired(c *gin.Context) {
	if identity, err := DecodeUserJWT(c); err == nil {
		c.Set(CtxUserID, identity.UserID)
		c.Set(CtxUsername, identity.Username)
		c.Set(CtxDiscriminator, identity.Discriminator)
		c.Next()
		return
	}

	session := sessions.Default(c)
	if id, ok := session.Get(CtxUserID).(string); ok && id != "" {
		c.Set(CtxUserID, id)
		if name, ok := session.Get(CtxUsername).(string); ok {
			c.Set(CtxUsername, name)
		}
		if disc, ok := session.Get(CtxDiscriminator).(string); ok {
			c.Set(CtxDiscriminator, disc)
		}
		c.Next()
		return
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
