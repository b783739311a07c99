// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maktab-app/maktab-wallet/internal/domain"
	"github.com/maktab-app/maktab-wallet/pkg/errorspkg"
	"github.com/maktab-app/maktab-wallet/pkg/passpkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
}

// WalletCreator opens the user's wallet account at registration.
type WalletCreator interface {
	Create(ctx context.Context, owner string) (domain.Account, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo    Repo
	wallets WalletCreator
}

// New returns user service struct to manage user business logic.
func New(ur Repo, wc WalletCreator) *Service {
	return &Service{
		repo:    ur,
		wallets: wc,
	}
}

// NewUserWithoutPassword returns user with removed sensitive data.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Create creates the user together with their wallet account (balance 0)
// and returns the user.
func (s *Service) Create(ctx context.Context, username, password, fullname, email, role string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	if role == "" {
		role = domain.RoleStudent
	}

	arg := domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		FullName:       fullname,
		Email:          email,
		Role:           role,
	}

	gotUser, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	if _, err := s.wallets.Create(ctx, gotUser.Username); err != nil {
		l.Error().Err(err).Str("username", gotUser.Username).Msg("failed to open wallet")
		return result, errorspkg.ErrInternal
	}

	result = NewUserWithoutPassword(gotUser)

	return result, nil
}

// Get returns the user with the given username.
func (s *Service) Get(ctx context.Context, username string) (domain.UserWithoutPassword, error) {
	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return NewUserWithoutPassword(gotUser), nil
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, pass string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWithoutPassword

	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		return response, err
	}

	err = passpkg.Check(pass, gotUser.HashedPassword)
	if err != nil {
		l.Warn().Err(err).Send()
		return response, domain.ErrWrongPassword
	}

	response = NewUserWithoutPassword(gotUser)

	return response, nil
}
