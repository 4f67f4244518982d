package controller

import (
	"errors"
	"net/http"

	"market/logger"
	"market/web/service"
	"market/web/session"

	"github.com/gin-gonic/gin"
)

// RegisterForm represents the account registration request.
type RegisterForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// LoginForm represents the login request.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// IndexController handles the public pages and the login/registration flow.
type IndexController struct {
	BaseController

	settingMaxAge int
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup, sessionMaxAge int) *IndexController {
	a := &IndexController{settingMaxAge: sessionMaxAge}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.welcome)
	g.GET("/about", a.about)
	g.GET("/contact", a.contact)
	g.GET("/register", a.registerPage)
	g.POST("/register", a.register)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

func (a *IndexController) welcome(c *gin.Context) {
	html(c, "welcome.html", I18nWeb(c, "pages.welcome.title"), nil)
}

func (a *IndexController) about(c *gin.Context) {
	html(c, "about.html", I18nWeb(c, "pages.about.title"), nil)
}

func (a *IndexController) contact(c *gin.Context) {
	html(c, "contact.html", I18nWeb(c, "pages.contact.title"), nil)
}

func (a *IndexController) registerPage(c *gin.Context) {
	html(c, "register.html", I18nWeb(c, "pages.register.title"), nil)
}

// register creates a new account. Constraint failures re-render the form
// with the failed constraints listed inline; success redirects to the login
// page with a flash notice.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "register.html", I18nWeb(c, "pages.register.title"), gin.H{
			"errors": []string{I18nWeb(c, "pages.register.errors.invalidFormData")},
			"form":   form,
		})
		return
	}

	_, err := a.userService.Register(form.Username, form.Email, form.Password, form.ConfirmPassword)
	if err != nil {
		var validationErr *service.ValidationError
		var errs []string
		switch {
		case errors.As(err, &validationErr):
			for _, key := range validationErr.Messages {
				errs = append(errs, I18nWeb(c, key))
			}
		case errors.Is(err, service.ErrDuplicateUser):
			errs = append(errs, I18nWeb(c, "pages.register.errors.duplicateUser"))
		default:
			logger.Error("register err:", err)
			errs = append(errs, I18nWeb(c, "pages.register.errors.internal"))
		}
		html(c, "register.html", I18nWeb(c, "pages.register.title"), gin.H{
			"errors": errs,
			"form":   form,
		})
		return
	}

	if err := session.AddFlash(c, I18nWeb(c, "pages.register.success")); err != nil {
		logger.Warning("add flash err:", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

func (a *IndexController) loginPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, "/account")
		return
	}
	html(c, "login.html", I18nWeb(c, "pages.login.title"), nil)
}

// login authenticates the user and establishes the session. The failure
// message never distinguishes a missing user from a wrong password.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil || form.Username == "" || form.Password == "" {
		html(c, "login.html", I18nWeb(c, "pages.login.title"), gin.H{
			"errors": []string{I18nWeb(c, "pages.login.invalidCredentials")},
		})
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	if user == nil {
		logger.Warningf("failed login for username %q, IP: %s", form.Username, getRemoteIp(c))
		html(c, "login.html", I18nWeb(c, "pages.login.title"), gin.H{
			"errors": []string{I18nWeb(c, "pages.login.invalidCredentials")},
		})
		return
	}

	if err := session.SetMaxAge(c, a.settingMaxAge*60); err != nil {
		logger.Warning("set session max age err:", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("save session err:", err)
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	c.Redirect(http.StatusFound, "/account")
}

// logout destroys the session and returns to the welcome page.
func (a *IndexController) logout(c *gin.Context) {
	userId := session.GetLoginUserId(c)
	if userId > 0 {
		logger.Infof("user id %d logged out", userId)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("clear session err:", err)
	}
	c.Redirect(http.StatusFound, "/")
}
