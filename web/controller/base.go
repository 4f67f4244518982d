// Package controller provides the HTTP request handlers of the market shop:
// public pages, account registration and login, the catalog, favorites,
// avatar upload and the small JSON API.
package controller

import (
	"net/http"

	"market/database/model"
	"market/logger"
	"market/web/service"
	"market/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers,
// including the login check for protected routes.
type BaseController struct {
	userService service.UserService
}

// checkLogin verifies the session and resolves the current user for the
// request. A session pointing at a user that no longer resolves is treated
// as no session at all.
func (a *BaseController) checkLogin(c *gin.Context) {
	userId := session.GetLoginUserId(c)
	if userId > 0 {
		if user := a.userService.GetUser(userId); user != nil {
			c.Set("loginUser", user)
			c.Next()
			return
		}
		logger.Debugf("stale session for user id %d", userId)
		if err := session.ClearSession(c); err != nil {
			logger.Warning("clear stale session err:", err)
		}
	}

	if isAjax(c) {
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "pages.login.loginAgain"))
	} else {
		c.Redirect(http.StatusTemporaryRedirect, "/login")
	}
	c.Abort()
}

// loginUser returns the user resolved by checkLogin.
func (a *BaseController) loginUser(c *gin.Context) *model.User {
	if obj, ok := c.Get("loginUser"); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

// I18nWeb retrieves an internationalized message for the web interface
// based on the current locale.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return name
	}
	i18nFunc, _ := anyfunc.(func(key string, params ...string) string)
	return i18nFunc(name, params...)
}
