package handlers

import (
	"net/http"

	"defense-dash/internal/middleware"

	"github.com/gin-gonic/gin"
)

func IndexPage(c *gin.Context) {
	if middleware.CurrentSession(c).Authenticated {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
