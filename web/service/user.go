package service

import (
	"strings"

	"pillbox/database"
	"pillbox/database/model"
	"pillbox/logger"
	"pillbox/util/common"
	"pillbox/util/crypto"

	"gorm.io/gorm"
)

type UserService struct{}

// NormalizeEmail lower-cases and trims an email address. Every lookup
// and every stored value goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a regular-user account with a bcrypt password hash.
func (s *UserService) Register(email, password string) error {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return common.NewError("email and password required")
	}

	db := database.GetDB()
	var count int64
	err := db.Model(model.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	user := &model.User{
		Email:    email,
		Password: hash,
		Role:     model.RoleUser,
	}
	return db.Create(user).Error
}

// Login verifies credentials and returns the account. The account's
// Role column decides whether the session becomes a user or an admin
// session; there is no out-of-band admin match.
func (s *UserService) Login(email, password string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", NormalizeEmail(email)).
		First(user).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.First(user, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUsers returns every non-admin account in storage order.
func (s *UserService) GetUsers() ([]model.User, error) {
	db := database.GetDB()
	var users []model.User
	err := db.Model(model.User{}).
		Where("role <> ?", model.RoleAdmin).
		Find(&users).
		Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes the user and every medicine it owns inside one
// transaction, children first. Partial deletion is never observable.
func (s *UserService) DeleteUser(id int) error {
	db := database.GetDB()
	return db.Transaction(func(tx *gorm.DB) error {
		user := &model.User{}
		if err := tx.First(user, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Medicine{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
