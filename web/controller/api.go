package controller

import (
	"market/web/service"

	"github.com/gin-gonic/gin"
)

// APIController exposes the catalog and favorites as JSON.
type APIController struct {
	BaseController

	itemService     service.ItemService
	favoriteService service.FavoriteService
}

func NewAPIController(g *gin.RouterGroup) *APIController {
	a := &APIController{}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/api")

	g.GET("/items", a.items)
	g.GET("/favorites", a.checkLogin, a.favorites)
}

func (a *APIController) items(c *gin.Context) {
	items, err := a.itemService.GetItems()
	jsonObj(c, items, err)
}

func (a *APIController) favorites(c *gin.Context) {
	user := a.loginUser(c)
	items, err := a.favoriteService.GetFavoriteItems(user.Id)
	jsonObj(c, items, err)
}
