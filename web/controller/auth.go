package controller

import (
	"net/http"

	"postboard/web/entity"
	"postboard/web/service"

	"github.com/gin-gonic/gin"
)

// AuthController exchanges credentials for bearer tokens.
type AuthController struct {
	tokenService service.TokenService
	auditService service.AuditService
}

func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
}

func (a *AuthController) login(c *gin.Context) {
	req := &entity.Login{}
	if err := c.ShouldBindJSON(req); err != nil {
		jsonValidation(c, err.Error())
		return
	}

	token, user, err := a.tokenService.Login(req.Email, req.Password)
	if err != nil {
		jsonError(c, err)
		return
	}

	a.auditService.LogAction(user.Id, "LOGIN", "user", user.Id, getRemoteIp(c), nil)
	c.JSON(http.StatusOK, entity.Token{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
