package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"task-api/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already exists")
)

// pqUniqueViolation is the Postgres SQLSTATE for a unique constraint hit.
const pqUniqueViolation = "23505"

// UserRepository reads credentials from the users table. The HTTP flow only
// reads; Create exists for seeding users out of band.
type UserRepository struct {
	db      *sql.DB
	builder squirrel.StatementBuilderType
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query, args, err := r.builder.
		Select("id", "username", "password").
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var u models.User
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

// Create stores a user with an already hashed password and returns its id.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	query, args, err := r.builder.
		Insert("users").
		Columns("username", "password").
		Values(username, passwordHash).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return 0, ErrUserExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}
