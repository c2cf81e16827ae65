package model

import (
	"time"
)

type User struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type Post struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	Published bool      `json:"published" gorm:"not null"`
	OwnerId   int       `json:"owner_id" gorm:"not null;index"`
	Owner     User      `json:"-" gorm:"foreignKey:OwnerId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Vote records that a user voted on a post. At most one row exists per
// (post, user) pair; the pair is the primary key.
type Vote struct {
	PostId int  `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	UserId int  `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Dir    int  `json:"dir" gorm:"not null"`
	Post   Post `json:"-" gorm:"foreignKey:PostId;constraint:OnDelete:CASCADE"`
	User   User `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key"`
	Value string `json:"value" form:"value"`
}

type AuditLog struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId     int       `json:"user_id" gorm:"index"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceId int       `json:"resource_id"`
	Ip         string    `json:"ip"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
