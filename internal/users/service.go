package users

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
	"github.com/lcsouza2/fittude-data-repo/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type userRepo interface {
	Create(ctx context.Context, params CreateParams) (int, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) (int, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

// Service keeps plaintext passwords away from the user store.
type Service struct {
	repo userRepo
	// injectable for tests, bcrypt at the default cost is slow
	HashFunc  func(password string) (string, error)
	CheckFunc func(password, hash string) bool
}

func NewService(repo userRepo) *Service {
	return &Service{
		repo:      repo,
		HashFunc:  pkg.HashPassword,
		CheckFunc: pkg.CheckPasswordHash,
	}
}

func (s *Service) Register(ctx context.Context, email, name, password string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	hash, err := s.HashFunc(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.Create(ctx, CreateParams{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		return 0, err
	}

	log.Debugf("registered user [%d]", id)
	return id, nil
}

func (s *Service) ChangePassword(ctx context.Context, email, newPassword string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.change_password")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	hash, err := s.HashFunc(newPassword)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, email, hash)
}

// CheckCredentials returns the user owning email if password matches its
// stored hash. An unknown email and a wrong password both give
// ErrInvalidCredentials.
func (s *Service) CheckCredentials(ctx context.Context, email, password string) (_ User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.check_credentials")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if !s.CheckFunc(password, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}
