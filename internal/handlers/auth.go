package handlers

import (
	"errors"
	"net/http"

	"defense-dash/internal/credentials"
	"defense-dash/internal/middleware"
	"defense-dash/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgBadForm            = "Invalid form data"
	msgInvalidCredentials = "Invalid username or password"
	msgDuplicateUser      = "Username already exists!"
	msgEmptyCredentials   = "Username and password are required"
	msgRegistered         = "Registered successfully! You can now log in."
	msgInternal           = "Something went wrong, please try again"
)

type credentialsForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *Handler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"error": ""})
}

func (h *Handler) Register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": msgBadForm})
		return
	}

	err := h.Store.Register(c.Request.Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, credentials.ErrDuplicateUser):
		render(c, http.StatusConflict, "register.html", gin.H{"error": msgDuplicateUser, "username": form.Username})
		return
	case errors.Is(err, credentials.ErrEmptyCredentials):
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": msgEmptyCredentials, "username": form.Username})
		return
	case err != nil:
		h.Log.Error("failed to register user", zap.String("username", form.Username), zap.Error(err))
		render(c, http.StatusInternalServerError, "register.html", gin.H{"error": msgInternal})
		return
	}

	h.Log.Info("user registered", zap.String("username", form.Username))
	h.Audit.Record(c.Request.Context(), form.Username, models.ActionRegister, "")

	c.Redirect(http.StatusFound, "/login?registered=1")
}

func (h *Handler) ShowLogin(c *gin.Context) {
	if middleware.CurrentSession(c).Authenticated {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	notice := ""
	if c.Query("registered") == "1" {
		notice = msgRegistered
	}
	render(c, http.StatusOK, "login.html", gin.H{"error": "", "notice": notice})
}

func (h *Handler) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": msgBadForm})
		return
	}

	err := h.Store.Authenticate(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, credentials.ErrInvalidCredentials) {
		h.Log.Warn("login failed", zap.String("username", form.Username))
		h.Audit.Record(c.Request.Context(), form.Username, models.ActionLoginFailed, "")
		render(c, http.StatusUnauthorized, "login.html", gin.H{"error": msgInvalidCredentials, "username": form.Username})
		return
	}
	if err != nil {
		h.Log.Error("failed to authenticate", zap.String("username", form.Username), zap.Error(err))
		render(c, http.StatusInternalServerError, "login.html", gin.H{"error": msgInternal})
		return
	}

	if err := middleware.SignIn(c, form.Username); err != nil {
		h.Log.Error("failed to save session", zap.Error(err))
		render(c, http.StatusInternalServerError, "login.html", gin.H{"error": msgInternal})
		return
	}

	h.Log.Info("user logged in", zap.String("username", form.Username))
	h.Audit.Record(c.Request.Context(), form.Username, models.ActionLogin, "")

	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) Logout(c *gin.Context) {
	user := middleware.CurrentSession(c).CurrentUser

	if err := middleware.SignOut(c); err != nil {
		h.Log.Warn("failed to clear session", zap.Error(err))
	}
	if user != "" {
		h.Log.Info("user logged out", zap.String("username", user))
		h.Audit.Record(c.Request.Context(), user, models.ActionLogout, "")
	}

	c.Redirect(http.StatusFound, "/login")
}
