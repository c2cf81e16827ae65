package middleware

import (
	"net/http"
	"strings"

	"postboard/util/common"
	"postboard/web/entity"
	"postboard/web/service"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// RequireAuth verifies the Authorization bearer token and stores the
// resolved user in the context under "user". Requests without a valid,
// resolvable token are aborted with 401.
func RequireAuth() gin.HandlerFunc {
	tokenService := service.TokenService{}
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Detail{
				Detail: "not authenticated",
			})
			return
		}

		user, err := tokenService.Authenticate(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			he := common.AsHTTPError(err)
			c.AbortWithStatusJSON(he.Code, entity.Detail{Detail: he.Message})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
