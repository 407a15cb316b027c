package application

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	repo "github.com/oksasatya/onesteptask/internal/domain/repository"
	"github.com/oksasatya/onesteptask/pkg/helpers"
)

// Credentials validates username/password pairs against the user or the
// admin collection. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
type Credentials struct {
	Users  repo.UserRepository
	Admins repo.AdminUserRepository
	Cost   int

	dummyOnce sync.Once
	dummyHash string
}

func NewCredentials(users repo.UserRepository, admins repo.AdminUserRepository) *Credentials {
	return &Credentials{Users: users, Admins: admins, Cost: bcrypt.DefaultCost}
}

// Hash hashes a password with the configured cost.
func (c *Credentials) Hash(plain string) (string, error) {
	return helpers.HashPasswordCost(plain, c.Cost)
}

// burn spends one comparison on a throwaway hash so an unknown username
// costs the same as a wrong password.
func (c *Credentials) burn(plain string) {
	c.dummyOnce.Do(func() {
		c.dummyHash, _ = c.Hash("onesteptask-dummy-password")
	})
	_ = helpers.CompareHashAndPassword(c.dummyHash, plain)
}

// AuthenticateUser returns the customer matching username and password.
func (c *Credentials) AuthenticateUser(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := c.Users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		c.burn(password)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// AuthenticateAdmin returns the administrator matching username and password.
func (c *Credentials) AuthenticateAdmin(ctx context.Context, username, password string) (*entity.AdminUser, error) {
	a, err := c.Admins.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		c.burn(password)
		return nil, ErrInvalidAdminCredentials
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return nil, ErrInvalidAdminCredentials
	}
	return a, nil
}
