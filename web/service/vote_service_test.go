package service

import (
	"net/http"
	"testing"

	"postboard/util/common"
	"postboard/web/entity"

	"github.com/stretchr/testify/assert"
)

func TestVoteService(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	postService := PostService{}
	service := VoteService{}

	owner, err := userService.Register("owner@example.com", "secret123")
	assert.NoError(t, err)
	voter, err := userService.Register("voter@example.com", "secret123")
	assert.NoError(t, err)

	post, err := postService.CreatePost(owner.Id, &entity.PostRequest{
		Title:   "votable",
		Content: "vote for me",
	})
	assert.NoError(t, err)

	// Voting on a missing post reports not found
	err = service.Vote(voter.Id, 9999, 1)
	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, common.AsHTTPError(err).Code)

	// Test adding a vote
	err = service.Vote(voter.Id, post.Id, 1)
	assert.NoError(t, err)

	count, err := service.CountVotesForPost(post.Id)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Voting twice conflicts
	err = service.Vote(voter.Id, post.Id, 1)
	assert.Error(t, err)
	assert.Equal(t, http.StatusConflict, common.AsHTTPError(err).Code)

	// A second user votes independently
	err = service.Vote(owner.Id, post.Id, 1)
	assert.NoError(t, err)

	count, err = service.CountVotesForPost(post.Id)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Test removing a vote
	err = service.Vote(voter.Id, post.Id, 0)
	assert.NoError(t, err)

	count, err = service.CountVotesForPost(post.Id)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Removing a vote that does not exist reports not found
	err = service.Vote(voter.Id, post.Id, 0)
	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, common.AsHTTPError(err).Code)

	// Test CountVotes
	total, err := service.CountVotes()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
