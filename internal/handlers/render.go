package handlers

import (
	"defense-dash/internal/middleware"

	"github.com/gin-gonic/gin"
)

// render — обёртка над c.HTML, которая во все шаблоны прокидывает сессию.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	s := middleware.CurrentSession(c)
	data["Session"] = s
	data["CurrentUsername"] = s.CurrentUser

	c.HTML(status, tmpl, data)
}
