package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/perronifitwear/backoffice/internal/webserver"
	"go.uber.org/zap"
)

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/api/login", login)
	webserver.ApiPOST("/logout", logout)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}

	cfg := GetConfig(c)
	if payload.Username != cfg.Auth.Username || payload.Password != cfg.Auth.Password {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect username or password", nil)
	}

	if err := webserver.SetLoggedIn(c, true); err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to create session", err.Error())
	}
	if err := GetStore(c).SetLoggedIn(true); err != nil {
		zap.L().Warn("failed to persist session flag", zap.Error(err))
	}

	zap.L().Info("operator logged in", zap.String("username", payload.Username))
	return ok(c, map[string]interface{}{"logged_in": true})
}

func logout(c echo.Context) error {
	if err := webserver.SetLoggedIn(c, false); err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to clear session", err.Error())
	}
	if err := GetStore(c).SetLoggedIn(false); err != nil {
		zap.L().Warn("failed to clear session flag", zap.Error(err))
	}
	return ok(c, map[string]interface{}{"logged_in": false})
}
