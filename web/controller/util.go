package controller

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"postboard/logger"
	"postboard/util/common"
	"postboard/web/entity"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonError renders err as a {"detail": ...} body with its HTTP status
// code. Errors without a status become 500 and get their cause logged.
func jsonError(c *gin.Context, err error) {
	he := common.AsHTTPError(err)
	if he.Code == http.StatusInternalServerError {
		logger.Error("request failed:", err)
	}
	c.JSON(he.Code, entity.Detail{Detail: he.Message})
}

// jsonValidation renders a binding failure as 422.
func jsonValidation(c *gin.Context, msg string) {
	c.JSON(http.StatusUnprocessableEntity, entity.Detail{Detail: msg})
}

// pathId parses the :id path parameter. A non-integer id is a validation
// failure, not a missing resource.
func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonValidation(c, "id must be an integer")
		return 0, false
	}
	return id, true
}
