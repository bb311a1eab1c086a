package auth

import (
	"context"
	"net/mail"
	"time"

	"github.com/taskward/taskward/apperr"
	"github.com/taskward/taskward/models"
	"github.com/taskward/taskward/utils"
)

// UserStore is the persistence surface the auth flow needs. Lookups
// return a not_found coded error when no row matches.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Service orchestrates signup and login over the store, the hasher and
// the token issuer. It owns no state of its own.
type Service struct {
	store  UserStore
	hasher Hasher
	tokens *Tokens
}

func NewService(store UserStore, hasher Hasher, tokens *Tokens) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens}
}

// Signup registers a new account and returns its public view plus a
// fresh token. The duplicate pre-checks give precise error messages;
// the database unique constraints remain the authoritative guard and a
// lost race surfaces as the same duplicate error from Insert.
func (s *Service) Signup(ctx context.Context, username, email, password string) (models.PublicUser, string, error) {
	var empty []string
	if username == "" {
		empty = append(empty, "username")
	}
	if email == "" {
		empty = append(empty, "email")
	}
	if password == "" {
		empty = append(empty, "password")
	}
	if len(empty) > 0 {
		return models.PublicUser{}, "", apperr.Validation("All fields are required", empty...)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return models.PublicUser{}, "", apperr.New(apperr.CodeEmailInvalid, "Email is not valid")
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return models.PublicUser{}, "", apperr.New(apperr.CodeDuplicateEmail, "Email already exists")
	} else if !apperr.IsCode(err, apperr.CodeNotFound) {
		return models.PublicUser{}, "", err
	}
	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		return models.PublicUser{}, "", apperr.New(apperr.CodeDuplicateUsername, "Username already exists")
	} else if !apperr.IsCode(err, apperr.CodeNotFound) {
		return models.PublicUser{}, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.PublicUser{}, "", apperr.Internal(err)
	}

	id, err := utils.GenerateRandomID()
	if err != nil {
		return models.PublicUser{}, "", apperr.Internal(err)
	}

	user := &models.User{
		ID:        id,
		Username:  username,
		Email:     email,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, user); err != nil {
		return models.PublicUser{}, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.PublicUser{}, "", apperr.Internal(err)
	}

	return user.Public(), token, nil
}

// Login checks credentials and returns the public view plus a fresh
// token. Password verification failures never reveal whether the email
// or the password was wrong beyond the documented error codes.
func (s *Service) Login(ctx context.Context, email, password string) (models.PublicUser, string, error) {
	var empty []string
	if email == "" {
		empty = append(empty, "email")
	}
	if password == "" {
		empty = append(empty, "password")
	}
	if len(empty) > 0 {
		return models.PublicUser{}, "", apperr.Validation("Email and password are required", empty...)
	}

	user, err := s.store.FindByEmail(ctx, email)
	if apperr.IsCode(err, apperr.CodeNotFound) {
		return models.PublicUser{}, "", apperr.New(apperr.CodeUserNotFound, "User not found. Please register first.")
	} else if err != nil {
		return models.PublicUser{}, "", err
	}

	if !s.hasher.Verify(password, user.Password) {
		return models.PublicUser{}, "", apperr.New(apperr.CodeInvalidCredentials, "Incorrect email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.PublicUser{}, "", apperr.Internal(err)
	}

	return user.Public(), token, nil
}
