package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/logger"
	"github.com/Domenick1991/airdesk/internal/repository"
	"github.com/sirupsen/logrus"
)

type UserUseCase interface {
	Login(ctx context.Context, email string) (*domain.User, error)
	FindOrRegister(ctx context.Context, email string, prompt ProfilePrompt) (*domain.User, bool, error)
	List(ctx context.Context) ([]domain.User, error)
}

type Profile struct {
	Name  string
	Phone string
}

// ProfilePrompt collects the details of a user being registered. It is only
// called when no user has the email.
type ProfilePrompt func(ctx context.Context) (Profile, error)

type UserService struct {
	repo repository.UserRepository
	log  logrus.FieldLogger
}

func NewUserService(repo repository.UserRepository, log logrus.FieldLogger) *UserService {
	if log == nil {
		log = logger.Discard()
	}
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Login(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no user with email %s, please register first", domain.ErrNotFound, email)
		}
		return nil, err
	}
	return user, nil
}

// FindOrRegister returns the user with email, registering it from prompt
// when absent. The boolean reports whether a user was created.
func (s *UserService) FindOrRegister(ctx context.Context, email string, prompt ProfilePrompt) (*domain.User, bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, false, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	profile, err := prompt(ctx)
	if err != nil {
		return nil, false, err
	}
	user, err := domain.NewUser(profile.Name, email, profile.Phone)
	if err != nil {
		return nil, false, err
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, false, err
	}
	users = append(users, *user)
	if err := s.repo.SaveAll(ctx, users); err != nil {
		return nil, false, err
	}

	s.log.WithField("email", user.Email).Info("user registered")
	return user, true, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

var _ UserUseCase = (*UserService)(nil)
