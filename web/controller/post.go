package controller

import (
	"net/http"
	"strconv"

	"postboard/web/entity"
	"postboard/web/middleware"
	"postboard/web/service"

	"github.com/gin-gonic/gin"
)

const defaultListLimit = 10

// PostController handles post CRUD and the vote-count listing. Retrieval by
// id is public; everything else requires a token.
type PostController struct {
	postService    service.PostService
	settingService service.SettingService
	auditService   service.AuditService
}

func NewPostController(g *gin.RouterGroup) *PostController {
	a := &PostController{}
	a.initRouter(g)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/posts")

	g.GET("/:id", a.getPost)

	g.GET("/", middleware.RequireAuth(), a.getPosts)
	g.POST("/", middleware.RequireAuth(), a.createPost)
	g.PUT("/:id", middleware.RequireAuth(), a.updatePost)
	g.DELETE("/:id", middleware.RequireAuth(), a.deletePost)
}

func (a *PostController) getPosts(c *gin.Context) {
	limit := defaultListLimit
	if value := c.Query("limit"); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			jsonValidation(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	skip := 0
	if value := c.Query("skip"); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			jsonValidation(c, "skip must be a non-negative integer")
			return
		}
		skip = n
	}

	pageSize, err := a.settingService.GetPageSize()
	if err != nil {
		jsonError(c, err)
		return
	}
	if limit > pageSize {
		limit = pageSize
	}

	posts, err := a.postService.GetPosts(limit, skip, c.Query("search"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (a *PostController) getPost(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	post, err := a.postService.GetPost(id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (a *PostController) createPost(c *gin.Context) {
	req := &entity.PostRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		jsonValidation(c, err.Error())
		return
	}

	user := currentUser(c)
	post, err := a.postService.CreatePost(user.Id, req)
	if err != nil {
		jsonError(c, err)
		return
	}

	a.auditService.LogAction(user.Id, "CREATE", "post", post.Id, getRemoteIp(c), map[string]any{"title": post.Title})
	c.JSON(http.StatusCreated, post)
}

func (a *PostController) updatePost(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	req := &entity.PostRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		jsonValidation(c, err.Error())
		return
	}

	user := currentUser(c)
	post, err := a.postService.UpdatePost(id, user.Id, req)
	if err != nil {
		jsonError(c, err)
		return
	}

	a.auditService.LogAction(user.Id, "UPDATE", "post", post.Id, getRemoteIp(c), map[string]any{"title": post.Title})
	c.JSON(http.StatusOK, post)
}

func (a *PostController) deletePost(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	user := currentUser(c)
	if err := a.postService.DeletePost(id, user.Id); err != nil {
		jsonError(c, err)
		return
	}

	a.auditService.LogAction(user.Id, "DELETE", "post", id, getRemoteIp(c), nil)
	c.Status(http.StatusNoContent)
}
