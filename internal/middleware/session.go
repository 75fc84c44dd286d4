package middleware

import (
	"defense-dash/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	keyLoggedIn    = "logged_in"
	keyCurrentUser = "current_user"

	ctxSession = "Session"
)

// LoadSession reads the session cookie into a models.Session and stores it on
// the gin context for the rest of the request.
func LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		var s models.Session
		if loggedIn, ok := sess.Get(keyLoggedIn).(bool); ok && loggedIn {
			if user, ok := sess.Get(keyCurrentUser).(string); ok {
				s = models.Session{Authenticated: true, CurrentUser: user}
			}
		}
		c.Set(ctxSession, s)

		c.Next()
	}
}

// CurrentSession returns the session loaded by LoadSession, or the
// zero (signed-out) session.
func CurrentSession(c *gin.Context) models.Session {
	if v, ok := c.Get(ctxSession); ok {
		if s, ok := v.(models.Session); ok {
			return s
		}
	}
	return models.Session{}
}

// SignIn marks the session as authenticated for username.
func SignIn(c *gin.Context, username string) error {
	sess := sessions.Default(c)
	sess.Set(keyLoggedIn, true)
	sess.Set(keyCurrentUser, username)
	if err := sess.Save(); err != nil {
		return err
	}
	c.Set(ctxSession, models.Session{Authenticated: true, CurrentUser: username})
	return nil
}

// SignOut clears the session unconditionally.
func SignOut(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	c.Set(ctxSession, models.Session{})
	return sess.Save()
}
