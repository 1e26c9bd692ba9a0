package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/storage/db"
)

// ErrDuplicateEmail is returned when an insert or update violates the
// unique email constraint.
var ErrDuplicateEmail = errors.New("duplicate email")

type UserRepository interface {
	WithDB(db db.DB) UserRepository
	CreateUser(ctx context.Context, user model.User) error
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	CountUsers(ctx context.Context) (int64, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user model.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db db.DB
}

func NewUserRepository(db db.DB) UserRepository {
	return &userRepository{db: db}
}

func (r userRepository) WithDB(db db.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password, role, created_at, updated_at`

func (r userRepository) CreateUser(ctx context.Context, user model.User) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (@id, @name, @email, @password, @role, @created_at, @updated_at)
	`, pgx.NamedArgs{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.PasswordHash,
		"role":       user.Role,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r userRepository) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = @id
	`, pgx.NamedArgs{"id": id})

	return scanUser(row)
}

func (r userRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = @email
	`, pgx.NamedArgs{"email": email})

	return scanUser(row)
}

func (r userRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r userRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (r userRepository) UpdateUser(ctx context.Context, user model.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET name       = @name,
			email      = @email,
			password   = @password,
			role       = @role,
			updated_at = @updated_at
		WHERE id = @id
	`, pgx.NamedArgs{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.PasswordHash,
		"role":       user.Role,
		"updated_at": user.UpdatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r userRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM users WHERE id = @id
	`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("scan user: %w", err)
	}

	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
