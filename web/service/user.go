package service

import (
	"fmt"

	"github.com/Tushar-web474/ImageForge/database"
	"github.com/Tushar-web474/ImageForge/database/model"
	"github.com/Tushar-web474/ImageForge/logger"
	"github.com/Tushar-web474/ImageForge/util/crypto"
)

// UserService implements registration, login and profile updates.
type UserService struct{}

// Register creates a new account. The uniqueness of username and email is
// enforced by the storage constraint, not pre-checked, so concurrent
// signups cannot slip past a read-then-write race.
func (s *UserService) Register(username, email, password, confirmPassword string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if password != confirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, fmt.Errorf("%w: username or email already exists", ErrDuplicate)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the user for session
// establishment. It performs no writes and is safe to repeat.
func (s *UserService) Authenticate(username, password string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, fmt.Errorf("%w: unknown username", ErrNotFound)
	} else if err != nil {
		logger.Warning("authenticate query failed:", err)
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: incorrect password", ErrInvalidCredentials)
	}
	return user, nil
}

// GetUser loads one user by id.
func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.First(user, id).Error
	if database.IsNotFound(err) {
		return nil, fmt.Errorf("%w: no such user", ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the email and, when newPassword is non-empty,
// re-hashes and updates the password. The same unique index that guards
// signup also fires here when the new email collides with another account.
func (s *UserService) UpdateProfile(userID int, email, newPassword string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	updates := map[string]any{"email": email}
	if newPassword != "" {
		hash, err := crypto.HashPassword(newPassword)
		if err != nil {
			return err
		}
		updates["password_hash"] = hash
	}

	db := database.GetDB()
	err := db.Model(model.User{}).
		Where("id = ?", userID).
		Updates(updates).
		Error
	if database.IsDuplicate(err) {
		return fmt.Errorf("%w: email already in use", ErrDuplicate)
	}
	return err
}
