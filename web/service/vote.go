package service

import (
	"fmt"

	"postboard/database"
	"postboard/database/model"
	"postboard/util/common"
)

// VoteService casts and removes votes. A user holds at most one vote per
// post; the (post, user) pair is the votes table primary key.
type VoteService struct{}

// Vote applies dir for userId on postId: 1 inserts the vote, 0 removes it.
// The post existence check and the mutation share one transaction.
func (s *VoteService) Vote(userId int, postId int, dir int) error {
	db := database.GetDB()
	tx := db.Begin()
	var err error
	defer func() {
		if err == nil {
			tx.Commit()
		} else {
			tx.Rollback()
		}
	}()

	err = tx.First(&model.Post{}, postId).Error
	if database.IsNotFound(err) {
		err = common.ErrNotFound(fmt.Sprintf("post with id %d does not exist", postId))
		return err
	}
	if err != nil {
		return err
	}

	vote := &model.Vote{}
	err = tx.Where("post_id = ? AND user_id = ?", postId, userId).First(vote).Error
	voted := err == nil
	if err != nil && !database.IsNotFound(err) {
		return err
	}
	err = nil

	if dir == 1 {
		if voted {
			err = common.ErrConflict(fmt.Sprintf("user %d has already voted on post %d", userId, postId))
			return err
		}
		err = tx.Create(&model.Vote{PostId: postId, UserId: userId, Dir: dir}).Error
		if database.IsDuplicate(err) {
			// lost a voting race on the composite key
			err = common.ErrConflict(fmt.Sprintf("user %d has already voted on post %d", userId, postId))
		}
		return err
	}

	if !voted {
		err = common.ErrNotFound("vote does not exist")
		return err
	}
	err = tx.Where("post_id = ? AND user_id = ?", postId, userId).Delete(&model.Vote{}).Error
	return err
}

// CountVotesForPost returns the number of votes on one post.
func (s *VoteService) CountVotesForPost(postId int) (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(&model.Vote{}).Where("post_id = ?", postId).Count(&count).Error
	return count, err
}

func (s *VoteService) CountVotes() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(&model.Vote{}).Count(&count).Error
	return count, err
}
