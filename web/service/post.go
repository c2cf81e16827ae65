package service

import (
	"fmt"

	"postboard/database"
	"postboard/database/model"
	"postboard/util/common"
	"postboard/web/entity"

	"gorm.io/gorm"
)

// PostService implements post CRUD and the vote-count listing queries.
type PostService struct{}

// postRow is the scan target for the posts/votes join.
type postRow struct {
	model.Post
	Votes int64
}

// withVotes builds the posts query joined with per-post vote counts. The
// left join keeps posts with zero votes in the result.
func (s *PostService) withVotes(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Post{}).
		Select("posts.*, count(votes.post_id) AS votes").
		Joins("LEFT JOIN votes ON votes.post_id = posts.id").
		Group("posts.id")
}

// GetPosts returns up to limit posts starting at offset skip, each paired
// with its vote count, filtered to titles containing search and ordered by
// id ascending.
func (s *PostService) GetPosts(limit int, skip int, search string) ([]*entity.PostWithVotes, error) {
	db := database.GetDB()

	rows := make([]*postRow, 0)
	err := s.withVotes(db).
		Where("posts.title LIKE ?", "%"+search+"%").
		Order("posts.id ASC").
		Limit(limit).
		Offset(skip).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.PostWithVotes, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, &entity.PostWithVotes{Post: row.Post, Votes: row.Votes})
	}
	return posts, nil
}

// GetPost returns a single post with its vote count.
func (s *PostService) GetPost(id int) (*entity.PostWithVotes, error) {
	db := database.GetDB()

	row := &postRow{}
	result := s.withVotes(db).Where("posts.id = ?", id).Scan(row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, common.ErrNotFound(fmt.Sprintf("post with id %d was not found", id))
	}
	return &entity.PostWithVotes{Post: row.Post, Votes: row.Votes}, nil
}

// CreatePost stores a new post owned by ownerId. An omitted published flag
// defaults to true.
func (s *PostService) CreatePost(ownerId int, req *entity.PostRequest) (*model.Post, error) {
	published := true
	if req.Published != nil {
		published = *req.Published
	}

	post := &model.Post{
		Title:     req.Title,
		Content:   req.Content,
		Published: published,
		OwnerId:   ownerId,
	}
	db := database.GetDB()
	if err := db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost replaces the stored title, content, and published flag of the
// post. The existence check runs before the ownership check, so probing a
// missing id never reveals ownership.
func (s *PostService) UpdatePost(id int, userId int, req *entity.PostRequest) (*model.Post, error) {
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

	post := &model.Post{}
	err = tx.First(post, id).Error
	if database.IsNotFound(err) {
		err = common.ErrNotFound(fmt.Sprintf("post with id %d was not found", id))
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if post.OwnerId != userId {
		err = common.ErrForbidden("not authorized to perform requested action")
		return nil, err
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}
	post.Title = req.Title
	post.Content = req.Content
	post.Published = published

	err = tx.Save(post).Error
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post after the same existence-then-ownership
// checks as UpdatePost. Votes on the post go with it via the cascade.
func (s *PostService) DeletePost(id int, userId int) error {
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

	post := &model.Post{}
	err = tx.First(post, id).Error
	if database.IsNotFound(err) {
		err = common.ErrNotFound(fmt.Sprintf("post with id %d was not found", id))
		return err
	}
	if err != nil {
		return err
	}
	if post.OwnerId != userId {
		err = common.ErrForbidden("not authorized to perform requested action")
		return err
	}

	err = tx.Delete(&model.Post{}, id).Error
	return err
}

func (s *PostService) CountPosts() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(&model.Post{}).Count(&count).Error
	return count, err
}
