package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/config"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/jwt"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/logger"
)

// UseCase handles staff registration and login.
type UseCase struct {
	users repository.UserRepository
	cfg   config.JWTConfig
	log   *logger.Logger
}

func NewUseCase(users repository.UserRepository, cfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{users: users, cfg: cfg, log: log}
}

// Register creates a staff account. The first account of a restaurant is its
// owner: RestaurantID equals the new user's own ID.
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	existing, err := uc.users.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = entity.RoleAdmin
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	u.RestaurantID = u.ID
	if err := uc.users.Create(u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Msg("user registered")
	return uc.issue(u)
}

// Login verifies credentials and returns a signed token.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	u, err := uc.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(u)
}

func (uc *UseCase) issue(u *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.cfg.Secret, u.ID, u.RestaurantID, u.Role, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:        token,
		UserID:       u.ID,
		RestaurantID: u.RestaurantID,
		Name:         u.Name,
		Role:         u.Role,
	}, nil
}
