package controller

import (
	"net/http"

	"postboard/web/entity"
	"postboard/web/middleware"
	"postboard/web/service"

	"github.com/gin-gonic/gin"
)

// VoteController casts and removes votes on posts.
type VoteController struct {
	voteService  service.VoteService
	auditService service.AuditService
}

func NewVoteController(g *gin.RouterGroup) *VoteController {
	a := &VoteController{}
	a.initRouter(g)
	return a
}

func (a *VoteController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/vote")

	g.POST("/", middleware.RequireAuth(), a.vote)
}

func (a *VoteController) vote(c *gin.Context) {
	req := &entity.VoteRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		jsonValidation(c, err.Error())
		return
	}
	dir := *req.Dir
	if dir != 0 && dir != 1 {
		jsonValidation(c, "dir must be 0 or 1")
		return
	}

	user := currentUser(c)
	if err := a.voteService.Vote(user.Id, req.PostId, dir); err != nil {
		jsonError(c, err)
		return
	}

	if dir == 1 {
		a.auditService.LogAction(user.Id, "CREATE", "vote", req.PostId, getRemoteIp(c), nil)
		c.JSON(http.StatusCreated, entity.Message{Message: "successfully added vote"})
		return
	}
	a.auditService.LogAction(user.Id, "DELETE", "vote", req.PostId, getRemoteIp(c), nil)
	c.JSON(http.StatusCreated, entity.Message{Message: "successfully deleted vote"})
}
