package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pitwall/paddockpress/internal/client/models"
	"github.com/pitwall/paddockpress/internal/client/store"
	"github.com/pitwall/paddockpress/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// UserService manages CMS accounts. Passwords are stored as bcrypt hashes
// only.
type UserService struct {
	users    *store.Table
	notifier Notifier
}

func NewUserService(st *store.Store, n Notifier) *UserService {
	return &UserService{users: st.Table("users"), notifier: n}
}

// Create inserts a new account with a hashed password.
func (s *UserService) Create(ctx context.Context, login, displayName, role, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Login:        login,
		DisplayName:  displayName,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.AddAs(ctx, s.users, u.ID, *u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.notifier.NotifyWrite()
	return u, nil
}

// SetPassword replaces the stored hash for an existing account.
func (s *UserService) SetPassword(ctx context.Context, id, password string) error {
	u, err := store.GetAs[models.User](ctx, s.users, id)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	if err := store.PutAs(ctx, s.users, u.ID, *u); err != nil {
		return err
	}
	s.notifier.NotifyWrite()
	return nil
}

// Authenticate verifies a login/password pair and returns the account.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	docs, err := s.users.Filter(ctx, func(doc json.RawMessage) bool {
		var row struct {
			Login string `json:"login"`
		}
		return json.Unmarshal(doc, &row) == nil && row.Login == login
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, common.ErrorNotFound
	}

	var u models.User
	if err := json.Unmarshal(docs[0], &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorAuth
	}
	return &u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return store.ToArrayAs[models.User](ctx, s.users)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.NotifyWrite()
	return nil
}
