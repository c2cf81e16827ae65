package service

import (
	"fmt"

	"postboard/database"
	"postboard/database/model"
	"postboard/util/common"
	"postboard/util/crypto"
)

// UserService manages registration, lookup, and credential checks.
type UserService struct{}

// Register creates a user with an argon2id password hash. The raw password
// is never stored.
func (s *UserService) Register(email string, password string) (*model.User, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, common.ErrConflict(fmt.Sprintf("user with email %s already exists", email))
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: hash,
	}
	err = db.Create(user).Error
	if database.IsDuplicate(err) {
		// lost a registration race on the unique email index
		return nil, common.ErrConflict(fmt.Sprintf("user with email %s already exists", email))
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(&model.User{}).First(user, id).Error
	if database.IsNotFound(err) {
		return nil, common.ErrNotFound(fmt.Sprintf("user with id %d does not exist", id))
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies login credentials. Unknown email and wrong password
// produce the same error so the response does not reveal which part failed.
func (s *UserService) CheckUser(email string, password string) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(&model.User{}).Where("email = ?", email).First(user).Error
	if database.IsNotFound(err) {
		return nil, common.ErrUnauthorized("invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil, common.ErrUnauthorized("invalid credentials")
	}
	return user, nil
}

func (s *UserService) CountUsers() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(&model.User{}).Count(&count).Error
	return count, err
}
