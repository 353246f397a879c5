package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/perronifitwear/backoffice/config"
	"github.com/perronifitwear/backoffice/internal/catalog"
	"github.com/perronifitwear/backoffice/internal/notify"
	"go.uber.org/zap"
)

// Echo context keys populated for every request.
const (
	ContextKeyConfig   = "backoffice_config"
	ContextKeyStore    = "backoffice_store"
	ContextKeyNotifier = "backoffice_notifier"
	ContextKeyBus      = "backoffice_bus"
	ContextKeyNode     = "backoffice_node"
)

// SessionName is the login cookie name.
const SessionName = "backoffice_session"

// WebContext carries the collaborators handlers reach through the echo
// context.
type WebContext struct {
	Config   *config.AppConfig
	Store    *catalog.Store
	Notifier *notify.Notifier
	Bus      EventBus.Bus
	Node     *snowflake.Node
}

type WebServer struct {
	root    *echo.Echo
	api     *echo.Group
	wc      *WebContext
	cookies *sessions.CookieStore
}

var server *WebServer

// Init builds the global web server instance routes register against.
func Init(wc *WebContext) {
	server = NewWebServer(wc)
}

func NewWebServer(wc *WebContext) *WebServer {
	s := &WebServer{
		root:    echo.New(),
		wc:      wc,
		cookies: sessions.NewCookieStore([]byte(wc.Config.Web.Secret)),
	}
	s.root.HideBanner = true
	s.root.HidePort = true
	s.root.Use(middleware.Recover())
	s.root.Use(s.injectContext)
	s.root.Use(s.accessLog)
	s.api = s.root.Group("/api", s.sessionGuard)
	return s
}

func (s *WebServer) injectContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(ContextKeyConfig, s.wc.Config)
		c.Set(ContextKeyStore, s.wc.Store)
		c.Set(ContextKeyNotifier, s.wc.Notifier)
		c.Set(ContextKeyBus, s.wc.Bus)
		c.Set(ContextKeyNode, s.wc.Node)
		return next(c)
	}
}

func (s *WebServer) accessLog(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		zap.L().Debug("http request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("elapsed", time.Since(start)))
		return err
	}
}

// sessionGuard admits only authenticated sessions. Login routes register on
// the root, everything else sits behind this check.
func (s *WebServer) sessionGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _ := s.cookies.Get(c.Request(), SessionName)
		if v, ok := sess.Values["isLoggedIn"].(string); ok && v == "true" {
			return next(c)
		}
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"code":    "UNAUTHORIZED",
			"message": "Login required",
		})
	}
}

// SetLoggedIn writes or clears the session cookie for this request.
func SetLoggedIn(c echo.Context, v bool) error {
	sess, _ := server.cookies.Get(c.Request(), SessionName)
	if v {
		sess.Values["isLoggedIn"] = "true"
		sess.Options = &sessions.Options{Path: "/", HttpOnly: true, MaxAge: 86400}
	} else {
		sess.Options = &sessions.Options{Path: "/", HttpOnly: true, MaxAge: -1}
	}
	return sess.Save(c.Request(), c.Response())
}

// ApiGET registers an authenticated GET route.
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

// ApiPOST registers an authenticated POST route.
func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

// ApiPUT registers an authenticated PUT route.
func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

// PubPOST registers an unauthenticated POST route (login).
func PubPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

// Start serves until the listener fails or Shutdown is called.
func Start() error {
	addr := fmt.Sprintf("%s:%d", server.wc.Config.Web.Host, server.wc.Config.Web.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	return server.root.Start(addr)
}

func Shutdown(ctx context.Context) error {
	return server.root.Shutdown(ctx)
}
