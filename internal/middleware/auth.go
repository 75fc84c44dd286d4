package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAuth stops signed-out requests and sends them to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
