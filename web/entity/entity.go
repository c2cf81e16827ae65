// Package entity defines the request and response shapes used by the web layer.
package entity

import (
	"postboard/database/model"
)

// Detail is the body of every error response.
type Detail struct {
	Detail string `json:"detail"`
}

// Message is the body of responses that only acknowledge an action.
type Message struct {
	Message string `json:"message"`
}

type UserCreate struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type Login struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// PostRequest is the payload for creating and replacing posts. Published is
// a pointer so an omitted field can fall back to true while an explicit
// false is kept.
type PostRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Published *bool  `json:"published"`
}

// PostWithVotes pairs a post with its aggregate vote count.
type PostWithVotes struct {
	Post  model.Post `json:"Post"`
	Votes int64      `json:"votes"`
}

// VoteRequest casts (dir 1) or removes (dir 0) the caller's vote on a post.
// Dir is a pointer so a literal 0 survives required validation.
type VoteRequest struct {
	PostId int  `json:"post_id" binding:"required"`
	Dir    *int `json:"dir" binding:"required"`
}

// AllSetting is the editable configuration rendered by the CLI. The signing
// secret is deliberately absent.
type AllSetting struct {
	WebListen          string `json:"webListen" form:"webListen"`
	WebPort            int    `json:"webPort" form:"webPort"`
	TokenExpiryMinutes int    `json:"tokenExpiryMinutes" form:"tokenExpiryMinutes"`
	PageSize           int    `json:"pageSize" form:"pageSize"`
	AuditRetentionDays int    `json:"auditRetentionDays" form:"auditRetentionDays"`
}
