// Package controller provides the HTTP request handlers for the postboard
// API: users, login, posts, votes, and the status endpoint.
package controller

import (
	"postboard/database/model"

	"github.com/gin-gonic/gin"
)

// currentUser returns the user resolved by the auth middleware. It is nil
// on routes that do not require authentication.
func currentUser(c *gin.Context) *model.User {
	value, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, _ := value.(*model.User)
	return user
}
