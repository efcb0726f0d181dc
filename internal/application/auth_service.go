package application

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	repo "github.com/oksasatya/courseitda/internal/domain/repository"
	"github.com/oksasatya/courseitda/pkg/helpers"
	"github.com/oksasatya/courseitda/pkg/mailer"
	mailtpl "github.com/oksasatya/courseitda/pkg/mailer/templates"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func nowUTC() time.Time {
	return time.Now().UTC()
}

type AuthService struct {
	Users    repo.UserRepository
	Hasher   PasswordHasher
	Tokens   TokenCodec
	Sessions *SessionStore
	Mail     JobPublisher
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, tokens TokenCodec, sessions *SessionStore, mail JobPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:    users,
		Hasher:   hasher,
		Tokens:   tokens,
		Sessions: sessions,
		Mail:     mail,
		Logger:   logger,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Nickname string
}

// Register creates an account. The email must be unused.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Email == "" || in.Password == "" || in.Nickname == "" {
		return nil, validationError("email, password and nickname are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, validationError("password must be at least 6 characters")
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, validationError("invalid email format")
	}

	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, conflictError("email already in use")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:        uuid.NewString(),
		Email:     in.Email,
		Password:  hash,
		Nickname:  in.Nickname,
		CreatedAt: nowUTC(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, conflictError("email already in use")
		}
		return nil, err
	}

	s.enqueueWelcome(ctx, u)
	return u, nil
}

func (s *AuthService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     map[string]any{"Name": u.Nickname, "Email": u.Email},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}

// Login checks the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if email == "" || password == "" {
		return nil, "", validationError("email and password are required")
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", notFoundError("account does not exist")
		}
		return nil, "", err
	}
	if !s.Hasher.Compare(u.Password, password) {
		return nil, "", authError("password does not match")
	}

	token, err := s.Tokens.Issue(u.ID, time.Now())
	if err != nil {
		helpers.LogError(s.Logger, "issue token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, "", err
	}
	if s.Sessions != nil {
		if err := s.Sessions.Save(ctx, u, token); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("save session failed")
		}
	}
	return u, token, nil
}

// VerifyToken resolves a token to the id of an existing user.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (string, error) {
	userID, err := s.Tokens.Parse(token)
	if err != nil || userID == "" {
		return "", authError("invalid token")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", authError("invalid token")
		}
		return "", err
	}
	return u.ID, nil
}

// Logout forgets the recorded session of the user.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.Sessions == nil {
		return nil
	}
	return s.Sessions.Clear(ctx, userID)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundError("user not found")
		}
		return nil, err
	}
	return u, nil
}
