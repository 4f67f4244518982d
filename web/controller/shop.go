package controller

import (
	"errors"
	"net/http"
	"strconv"

	"market/logger"
	"market/web/service"
	"market/web/session"

	"github.com/gin-gonic/gin"
)

// ShopController handles the authenticated shop pages: the catalog, the
// account page with favorites, avatar upload and the catalog reseed.
type ShopController struct {
	BaseController

	itemService     service.ItemService
	favoriteService service.FavoriteService
	avatarService   service.AvatarService
}

// NewShopController creates a new ShopController and initializes its routes.
func NewShopController(g *gin.RouterGroup) *ShopController {
	a := &ShopController{}
	a.initRouter(g)
	return a
}

func (a *ShopController) initRouter(g *gin.RouterGroup) {
	// Subgroup so the login check stays off routes other controllers
	// register on the parent group.
	g = g.Group("/")
	g.Use(a.checkLogin)

	g.GET("/home", a.home)
	g.GET("/account", a.account)
	g.POST("/account/avatar", a.uploadAvatar)
	g.POST("/favorite/:itemId", a.favorite)
	g.GET("/reset_items", a.resetItems)
}

func (a *ShopController) home(c *gin.Context) {
	items, err := a.itemService.GetItems()
	if err != nil {
		logger.Error("get items err:", err)
	}
	html(c, "home.html", I18nWeb(c, "pages.home.title"), gin.H{
		"items": items,
	})
}

func (a *ShopController) account(c *gin.Context) {
	user := a.loginUser(c)
	favorites, err := a.favoriteService.GetFavoriteItems(user.Id)
	if err != nil {
		logger.Error("get favorite items err:", err)
	}
	html(c, "account.html", I18nWeb(c, "pages.account.title"), gin.H{
		"favorites": favorites,
	})
}

// uploadAvatar stores the uploaded image and points the account's avatar at
// it. Failures are flashed back onto the account page, never fatal.
func (a *ShopController) uploadAvatar(c *gin.Context) {
	user := a.loginUser(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		logger.Warning("avatar upload without file:", err)
		a.flash(c, I18nWeb(c, "pages.account.avatar.noFile"))
		c.Redirect(http.StatusFound, "/account")
		return
	}

	err = a.avatarService.SaveAvatar(user, file)
	switch {
	case err == nil:
		a.flash(c, I18nWeb(c, "pages.account.avatar.updated"))
	case errors.Is(err, service.ErrNoFile):
		a.flash(c, I18nWeb(c, "pages.account.avatar.noFile"))
	case errors.Is(err, service.ErrUnsupportedFileType):
		a.flash(c, I18nWeb(c, "pages.account.avatar.badType"))
	case errors.Is(err, service.ErrStorage):
		a.flash(c, I18nWeb(c, "pages.account.avatar.storeFailed"))
	default:
		logger.Error("save avatar err:", err)
		a.flash(c, I18nWeb(c, "pages.account.avatar.storeFailed"))
	}
	c.Redirect(http.StatusFound, "/account")
}

// favorite marks an item as a favorite of the current user, once.
func (a *ShopController) favorite(c *gin.Context) {
	user := a.loginUser(c)

	itemId, err := strconv.Atoi(c.Param("itemId"))
	if err != nil || itemId <= 0 {
		c.Redirect(http.StatusFound, "/home")
		return
	}

	if err := a.favoriteService.AddFavorite(user.Id, itemId); err != nil {
		logger.Error("add favorite err:", err)
	}
	c.Redirect(http.StatusFound, "/home")
}

// resetItems wipes the catalog back to the seed data.
func (a *ShopController) resetItems(c *gin.Context) {
	if err := a.itemService.ResetAndSeed(); err != nil {
		logger.Error("reset items err:", err)
		a.flash(c, I18nWeb(c, "pages.home.resetFailed"))
	} else {
		a.flash(c, I18nWeb(c, "pages.home.resetDone"))
	}
	c.Redirect(http.StatusFound, "/home")
}

func (a *ShopController) flash(c *gin.Context, message string) {
	if err := session.AddFlash(c, message); err != nil {
		logger.Warning("add flash err:", err)
	}
}
