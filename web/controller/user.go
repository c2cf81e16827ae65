package controller

import (
	"net/http"

	"postboard/web/entity"
	"postboard/web/service"

	"github.com/gin-gonic/gin"
)

// UserController handles registration and user lookup.
type UserController struct {
	userService  service.UserService
	auditService service.AuditService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/users")

	g.POST("/", a.createUser)
	g.GET("/:id", a.getUser)
}

func (a *UserController) createUser(c *gin.Context) {
	req := &entity.UserCreate{}
	if err := c.ShouldBindJSON(req); err != nil {
		jsonValidation(c, err.Error())
		return
	}

	user, err := a.userService.Register(req.Email, req.Password)
	if err != nil {
		jsonError(c, err)
		return
	}

	a.auditService.LogAction(user.Id, "CREATE", "user", user.Id, getRemoteIp(c), map[string]any{"email": user.Email})
	c.JSON(http.StatusCreated, user)
}

func (a *UserController) getUser(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	user, err := a.userService.GetUser(id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
