package service

import (
	"net/mail"
	"unicode/utf8"

	"market/database"
	"market/database/model"
	"market/logger"
	"market/util/common"
	"market/util/crypto"

	"gorm.io/gorm"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	minPasswordLen = 6
)

type UserService struct{}

// Register validates the registration form, hashes the password and
// persists a new user. Constraint failures come back as *ValidationError
// with i18n message keys, duplicate username/email as ErrDuplicateUser.
func (s *UserService) Register(username string, email string, password string, confirmPassword string) (*model.User, error) {
	var messages []string
	// Bounds count characters, not bytes, so Cyrillic names get the full
	// 30 characters.
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		messages = append(messages, "pages.register.errors.usernameLength")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		messages = append(messages, "pages.register.errors.invalidEmail")
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		messages = append(messages, "pages.register.errors.passwordLength")
	}
	if password != confirmPassword {
		messages = append(messages, "pages.register.errors.passwordMismatch")
	}
	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    &email,
		Password: hashedPassword,
	}

	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	logger.Infof("user %s registered", user.Username)
	return user, nil
}

// CheckUser verifies a username/password pair. A missing user and a wrong
// password both return nil so callers cannot tell the cases apart.
func (s *UserService) CheckUser(username string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	return user
}

// GetUser resolves the user bound to a session. A stale session id yields a
// nil user without an error, so the request proceeds as unauthenticated.
func (s *UserService) GetUser(id int) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		logger.Debugf("no user with id %d", id)
		return nil
	} else if err != nil {
		logger.Warning("load user err:", err)
		return nil
	}
	return user
}

// UpdateUserPassword sets a new password for an existing user. Used by the
// CLI, not exposed over HTTP.
func (s *UserService) UpdateUserPassword(username string, password string) error {
	if username == "" {
		return common.NewError("username can not be empty")
	} else if utf8.RuneCountInString(password) < minPasswordLen {
		return common.NewErrorf("password must be at least %d characters", minPasswordLen)
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	result := db.Model(model.User{}).
		Where("username = ?", username).
		Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.NewErrorf("no user with username %s", username)
	}
	return nil
}
