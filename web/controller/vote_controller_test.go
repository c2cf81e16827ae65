package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestVoteEndpoint(t *testing.T) {
	setup()
	defer teardown()
	router := newTestRouter()

	registerUser(t, router, "alice@example.com", "secret123")
	bobId := registerUser(t, router, "bob@example.com", "secret123")
	aliceToken := loginUser(t, router, "alice@example.com", "secret123")
	bobToken := loginUser(t, router, "bob@example.com", "secret123")

	w := doRequest(router, http.MethodPost, "/posts/", aliceToken, gin.H{
		"title":   "votable",
		"content": "vote for me",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	postId := int(decodeBody(t, w)["id"].(float64))

	// Test casting a vote
	w = doRequest(router, http.MethodPost, "/vote/", bobToken, gin.H{"post_id": postId, "dir": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message": "successfully added vote"}`, w.Body.String())

	// Voting twice conflicts
	w = doRequest(router, http.MethodPost, "/vote/", bobToken, gin.H{"post_id": postId, "dir": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"detail": "user %d has already voted on post %d"}`, bobId, postId), w.Body.String())

	// Test removing the vote
	w = doRequest(router, http.MethodPost, "/vote/", bobToken, gin.H{"post_id": postId, "dir": 0})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message": "successfully deleted vote"}`, w.Body.String())

	// Removing it again reports not found
	w = doRequest(router, http.MethodPost, "/vote/", bobToken, gin.H{"post_id": postId, "dir": 0})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail": "vote does not exist"}`, w.Body.String())

	// Test dir validation
	w = doRequest(router, http.MethodPost, "/vote/", bobToken, gin.H{"post_id": postId, "dir": 2})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"detail": "dir must be 0 or 1"}`, w.Body.String())

	// Test voting on a missing post
	w = doRequest(router, http.MethodPost, "/vote/", bobToken, gin.H{"post_id": 9999, "dir": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail": "post with id 9999 does not exist"}`, w.Body.String())

	// Missing fields are unprocessable
	w = doRequest(router, http.MethodPost, "/vote/", bobToken, gin.H{"post_id": postId})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
