package user

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	Create(ctx context.Context, email, passwordHash, name string, role Role) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, passwordHash, name string, role Role) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, name, role, created_at, updated_at
	`, email, passwordHash, name, role).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, phone, avatar_url, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).
		Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Phone, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, phone, avatar_url, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET name       = COALESCE($2, name),
		    phone      = COALESCE($3, phone),
		    avatar_url = COALESCE($4, avatar_url),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, name, phone, avatar_url, role, created_at, updated_at
	`, id, input.Name, input.Phone, input.AvatarURL).
		Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
