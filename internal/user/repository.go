package user

import (
	"context"
	"database/sql"
)

type Repository interface {
	Create(ctx context.Context, name, email, hashedPassword, role string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, hashedPassword, role string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
	INSERT INTO users (name, email, password, role)
	VALUES ($1, $2, $3, $4)
	RETURNING id, name, email, password, role, created_at
	`, name, email, hashedPassword, role).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
	SELECT id, name, email, password, role, created_at
	FROM users
	WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt)

	if err == sql.ErrNoRows {
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
	SELECT id, name, email, password, role, created_at
	FROM users
	WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
