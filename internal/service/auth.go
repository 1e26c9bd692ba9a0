package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/repository"
)

type AuthService interface {
	// Login verifies the credentials and returns the principal to store in
	// the session. Unknown email and wrong password are indistinguishable
	// to the caller.
	Login(ctx context.Context, email, password string) (model.Principal, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(ctx context.Context, email, password string) (model.Principal, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Principal{}, apperr.InvalidCredentialsErr
		}
		return model.Principal{}, fmt.Errorf("user repository get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.Principal{}, apperr.InvalidCredentialsErr
	}

	return model.Principal{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
