package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	repo "github.com/oksasatya/onesteptask/internal/domain/repository"
)

// AuthService covers registration, login for both roles and logout.
type AuthService struct {
	Users       repo.UserRepository
	Admins      repo.AdminUserRepository
	Credentials *Credentials
	Sessions    *Sessions
	Logger      *logrus.Logger
}

func NewAuthService(users repo.UserRepository, admins repo.AdminUserRepository, creds *Credentials, sessions *Sessions, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Admins: admins, Credentials: creds, Sessions: sessions, Logger: logger}
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
	Name     string
}

// Register creates a customer account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if _, err := s.Users.GetByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := s.Credentials.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Username: in.Username, Password: hash, Email: in.Email, Name: in.Name}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, conflictFor(err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return u, nil
}

// conflictFor maps a store uniqueness violation to the client-facing error.
func conflictFor(err error) error {
	var ce *repo.ConflictError
	if !errors.As(err, &ce) {
		return err
	}
	switch ce.Field {
	case "username":
		return ErrUsernameTaken
	case "email":
		return ErrEmailTaken
	case "pageSlug":
		return ErrSlugTaken
	default:
		return &Error{Kind: KindConflict, Message: ce.Error()}
	}
}

// LoginUser authenticates a customer and replaces previousSessionID with a
// new UserSession.
func (s *AuthService) LoginUser(ctx context.Context, previousSessionID, username, password string) (*entity.User, entity.Session, error) {
	u, err := s.Credentials.AuthenticateUser(ctx, username, password)
	if err != nil {
		loginsFailed.Add(1)
		return nil, entity.Session{}, err
	}
	sess, err := s.Sessions.Establish(ctx, previousSessionID, entity.UserIdentity(u.ID))
	if err != nil {
		return nil, entity.Session{}, err
	}
	loginsSucceeded.Add(1)
	return u, sess, nil
}

// LoginAdmin authenticates an administrator and replaces previousSessionID
// with a new AdminSession.
func (s *AuthService) LoginAdmin(ctx context.Context, previousSessionID, username, password string) (*entity.AdminUser, entity.Session, error) {
	a, err := s.Credentials.AuthenticateAdmin(ctx, username, password)
	if err != nil {
		loginsFailed.Add(1)
		if s.Logger != nil {
			s.Logger.WithField("username", username).Warn("admin login rejected")
		}
		return nil, entity.Session{}, err
	}
	sess, err := s.Sessions.Establish(ctx, previousSessionID, entity.AdminIdentity(a.ID))
	if err != nil {
		return nil, entity.Session{}, err
	}
	loginsSucceeded.Add(1)
	return a, sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.Sessions.Destroy(ctx, sessionID)
}

// CurrentUser loads the customer behind a UserSession.
func (s *AuthService) CurrentUser(ctx context.Context, id entity.Identity) (*entity.User, error) {
	if !id.IsUser() {
		return nil, ErrUnauthorized
	}
	u, err := s.Users.GetByID(ctx, id.SubjectID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// CurrentAdmin loads the administrator behind an AdminSession.
func (s *AuthService) CurrentAdmin(ctx context.Context, id entity.Identity) (*entity.AdminUser, error) {
	if !id.IsAdmin() {
		return nil, ErrUnauthorized
	}
	a, err := s.Admins.GetByID(ctx, id.SubjectID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrAdminNotFound
	}
	return a, err
}
