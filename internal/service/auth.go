package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hackarch/hackarch-api/internal/domain"
	"github.com/hackarch/hackarch-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup registers a new account. When the email belongs to a placeholder
// account left behind by a team invitation, the placeholder is claimed in
// place so the existing roster slot and invitations keep pointing at the
// same user ID.
func (s *AuthService) Signup(ctx context.Context, user domain.User, password string) (domain.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = hashedPassword

	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err == nil {
		if !existing.IsPlaceholder() {
			return domain.User{}, ErrUserEmailExists
		}

		return s.claimPlaceholder(ctx, existing, user)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	user.Status = domain.UserRegistered

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	// A placeholder has no usable credentials until it is claimed.
	if user.IsPlaceholder() {
		return domain.User{}, ErrUserNotFound
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

func (s *AuthService) claimPlaceholder(ctx context.Context, placeholder, user domain.User) (domain.User, error) {
	placeholder.FirstName = user.FirstName
	placeholder.LastName = user.LastName
	placeholder.CollegeName = user.CollegeName
	placeholder.Gender = user.Gender
	placeholder.PasswordHash = user.PasswordHash
	placeholder.Status = domain.UserRegistered

	claimed, err := s.repo.Update(ctx, placeholder)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return claimed, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
