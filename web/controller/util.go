package controller

import (
	"html/template"
	"net"
	"net/http"
	"strings"

	"market/config"
	"market/logger"
	"market/web/entity"
	"market/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonObj sends a JSON response with an object and error status.
func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, "", obj, err)
}

func jsonMsgObj(c *gin.Context, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		if msg != "" {
			m.Msg = msg
		}
	} else {
		m.Success = false
		m.Msg = msg + " (" + err.Error() + ")"
	}
	c.JSON(http.StatusOK, m)
}

// pureJsonMsg sends a pure JSON message response with custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// html renders a template with the common page context: title, current
// user, pending flash messages and version. Rendering goes through a clone
// of the base template with i18n bound to the request's language.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["request_uri"] = c.Request.RequestURI
	data["flashes"] = session.GetFlashes(c)
	data["isLogin"] = session.IsLogin(c)
	if user, ok := c.Get("loginUser"); ok {
		data["loginUser"] = user
	}

	obj, _ := c.Get("htmlTemplate")
	base, ok := obj.(*template.Template)
	if !ok {
		logger.Error("html template missing from context")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	tpl, err := base.Clone()
	if err != nil {
		logger.Error("clone html template err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	tpl.Funcs(template.FuncMap{"i18n": func(key string, params ...string) string {
		return I18nWeb(c, key, params...)
	}})

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := tpl.ExecuteTemplate(c.Writer, name, getContext(data)); err != nil {
		logger.Error("render template err:", err)
	}
}

// getContext adds version info to the provided gin.H.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver": config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// isAjax checks if the request expects a JSON response.
func isAjax(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
