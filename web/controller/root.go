package controller

import (
	"net/http"

	"postboard/web/entity"

	"github.com/gin-gonic/gin"
)

// RootController serves the greeting on /.
type RootController struct{}

func NewRootController(g *gin.RouterGroup) *RootController {
	a := &RootController{}
	a.initRouter(g)
	return a
}

func (a *RootController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
}

func (a *RootController) index(c *gin.Context) {
	c.JSON(http.StatusOK, entity.Message{Message: "Hello World"})
}
