package controller

import (
	"net/http"

	"postboard/web/middleware"
	"postboard/web/service"

	"github.com/gin-gonic/gin"
)

// StatusController reports host, process, and data figures.
type StatusController struct {
	statusService service.StatusService
}

func NewStatusController(g *gin.RouterGroup) *StatusController {
	a := &StatusController{}
	a.initRouter(g)
	return a
}

func (a *StatusController) initRouter(g *gin.RouterGroup) {
	g.GET("/status", middleware.RequireAuth(), a.status)
}

func (a *StatusController) status(c *gin.Context) {
	c.JSON(http.StatusOK, a.statusService.GetStatus())
}
