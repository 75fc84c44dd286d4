package server

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strconv"

	"defense-dash/internal/handlers"
	"defense-dash/internal/middleware"
	"defense-dash/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"
)

const sessionName = "defense_session"

func dataURI(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// sessionKeys derives a 32-byte signing key and a 32-byte AES key from secret.
func sessionKeys(secret string) ([]byte, []byte, error) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionName))
	authKey := make([]byte, 32)
	encKey := make([]byte, 32)
	if _, err := io.ReadFull(r, authKey); err != nil {
		return nil, nil, fmt.Errorf("derive session auth key: %w", err)
	}
	if _, err := io.ReadFull(r, encKey); err != nil {
		return nil, nil, fmt.Errorf("derive session encryption key: %w", err)
	}
	return authKey, encKey, nil
}

func NewRouter(h *handlers.Handler, sessionSecret string, log *zap.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"dataURI":  dataURI,
		"contains": contains,
		"num":      formatNumber,
	}).ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(static))

	authKey, encKey, err := sessionKeys(sessionSecret)
	if err != nil {
		return nil, err
	}
	store := cookie.NewStore(authKey, encKey)
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	r.Use(middleware.LoadSession())
	r.Use(middleware.RequestLogger(log))

	// ГЛАВНАЯ
	r.GET("/", handlers.IndexPage)

	// AUTH
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.Register)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	r.POST("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// DASHBOARD: фильтры и слайдеры приходят query-параметрами
	auth.GET("/dashboard", h.Dashboard)
	auth.GET("/api/predict", h.Predict)

	// АУДИТ
	auth.GET("/audit", h.ListAuditLogs)

	// HEALTHCHECK
	r.GET("/health", handlers.Health)

	return r, nil
}
