package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/repository"
	"github.com/dukasmart/partspos/internal/storage/db"
)

type RegisterUserParams struct {
	Name     string
	Email    string
	Password string

	// SetupSecret is only consulted on the anonymous bootstrap path.
	SetupSecret string

	// Actor is the authenticated caller, nil for anonymous requests.
	Actor *model.Principal
}

type UpdateUserParams struct {
	ID    uuid.UUID
	Name  string
	Email string

	// Password, when set, replaces the stored hash.
	Password *string

	// Role, when set, changes the user's role.
	Role *model.Role
}

type UserService interface {
	// Register creates an account. An authenticated owner creates staff;
	// an anonymous caller holding the setup secret bootstraps the first
	// owner while the users table is still empty. Everything else is
	// refused.
	Register(ctx context.Context, params RegisterUserParams) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, params UpdateUserParams) (model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	db         db.DB
	userRepo   repository.UserRepository
	setupOwner string
	bcryptCost int
}

func NewUserService(
	db db.DB,
	userRepo repository.UserRepository,
	setupOwnerSecret string,
	bcryptCost int,
) UserService {
	return &userService{
		db:         db,
		userRepo:   userRepo,
		setupOwner: setupOwnerSecret,
		bcryptCost: bcryptCost,
	}
}

func (s *userService) Register(ctx context.Context, params RegisterUserParams) (model.User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.User{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("bcrypt generate from password: %w", err)
	}

	var user model.User

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		role, err := s.resolveRole(ctx, db, params)
		if err != nil {
			return err
		}

		now := time.Now()
		user = model.User{
			ID:           id,
			Name:         params.Name,
			Email:        params.Email,
			PasswordHash: string(hash),
			Role:         role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.userRepo.WithDB(db).CreateUser(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return apperr.EmailTakenErr
			}
			return fmt.Errorf("user repository create user: %w", err)
		}

		return nil
	}); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// resolveRole decides the new account's role. Owners always create staff;
// the anonymous path is only open for the very first account and only with
// the correct setup secret.
func (s *userService) resolveRole(ctx context.Context, db db.DB, params RegisterUserParams) (model.Role, error) {
	if params.Actor != nil {
		if !params.Actor.IsOwner() {
			return "", apperr.ForbiddenErr
		}
		return model.RoleStaff, nil
	}

	count, err := s.userRepo.WithDB(db).CountUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("user repository count users: %w", err)
	}

	if count > 0 || s.setupOwner == "" || params.SetupSecret != s.setupOwner {
		return "", apperr.BootstrapClosedErr
	}

	return model.RoleOwner, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("user repository list users: %w", err)
	}

	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, params UpdateUserParams) (model.User, error) {
	var user model.User

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		current, err := s.userRepo.WithDB(db).GetUser(ctx, params.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.UserNotFoundErr
			}
			return fmt.Errorf("user repository get user: %w", err)
		}

		user = current
		user.Name = params.Name
		user.Email = params.Email
		user.UpdatedAt = time.Now()

		if params.Role != nil {
			if err := params.Role.Validate(); err != nil {
				return apperr.ValidationErr
			}
			user.Role = *params.Role
		}

		if params.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), s.bcryptCost)
			if err != nil {
				return fmt.Errorf("bcrypt generate from password: %w", err)
			}
			user.PasswordHash = string(hash)
		}

		if err := s.userRepo.WithDB(db).UpdateUser(ctx, user); err != nil {
			switch {
			case errors.Is(err, repository.ErrDuplicateEmail):
				return apperr.EmailTakenErr
			case errors.Is(err, repository.ErrNotFound):
				return apperr.UserNotFoundErr
			}
			return fmt.Errorf("user repository update user: %w", err)
		}

		return nil
	}); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.UserNotFoundErr
		}
		return fmt.Errorf("user repository delete user: %w", err)
	}

	return nil
}
