package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamestore-admin/internal/domain"
	"gamestore-admin/pkg/logger"
	"gamestore-admin/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	userRepo          domain.UserRepository
	users             *UserUsecase
	accessTokenExpiry time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, users *UserUsecase, atExpiry time.Duration) *AuthUsecase {
	return &AuthUsecase{
		userRepo:          userRepo,
		users:             users,
		accessTokenExpiry: atExpiry,
	}
}

// SignIn checks the credentials and issues an access token. Unknown emails
// and wrong passwords both yield domain.ErrInvalidCredentials.
func (u *AuthUsecase) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Profile, u.accessTokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// EnsureAdmin creates the bootstrap admin account unless the email is
// already registered. An empty email disables the bootstrap.
func (u *AuthUsecase) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" {
		return nil
	}
	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	profile := domain.ProfileAdmin
	admin, err := u.users.Create(ctx, domain.UserParams{
		Name:     &name,
		Email:    &email,
		Profile:  &profile,
		Password: &password,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	logger.WithContext(ctx).Info().Int64("user_id", admin.ID).Str("email", admin.Email).Msg("Bootstrap admin created")
	return nil
}
