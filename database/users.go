package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskward/taskward/apperr"
	"github.com/taskward/taskward/models"
)

const uniqueViolation = "23505"

// UserStore persists users in the users table.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Insert stores a new user. A concurrent signup with the same email or
// username loses the race here and gets the matching duplicate error,
// the same one the service-level pre-check produces.
func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password, created_at) VALUES ($1, $2, $3, $4, $5)",
		user.ID, user.Username, user.Email, user.Password, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return apperr.New(apperr.CodeDuplicateEmail, "Email already exists")
			case "users_username_key":
				return apperr.New(apperr.CodeDuplicateUsername, "Username already exists")
			}
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx,
		"SELECT id, username, email, password, created_at FROM users WHERE email = $1", email)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx,
		"SELECT id, username, email, password, created_at FROM users WHERE username = $1", username)
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx,
		"SELECT id, username, email, password, created_at FROM users WHERE id = $1", id)
}

func (s *UserStore) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.CodeNotFound, "user not found")
	} else if err != nil {
		return nil, apperr.Internal(err)
	}
	return &user, nil
}
