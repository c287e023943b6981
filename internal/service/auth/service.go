package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/auth"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/user"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/jwt"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

// Register implements auth.AuthService. For employees the manager email must
// resolve to an existing manager before any row is written.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created user.User
	var manager *user.User

	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		exists, err := a.UserRepository.ExistsByEmail(txCtx, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return user.ErrUserEmailExists
		}

		var managerEmail *string
		if req.Role == string(user.RoleEmployee) {
			m, err := a.UserRepository.GetManagerByEmail(txCtx, *req.ManagerEmail)
			if err != nil {
				return err
			}
			manager = &m
			managerEmail = req.ManagerEmail
		}

		newUser := user.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         user.Role(req.Role),
			ManagerEmail: managerEmail,
			CasualQuota:  user.DefaultCasualQuota,
			SickQuota:    user.DefaultSickQuota,
			EarnedQuota:  user.DefaultEarnedQuota,
		}

		created, err = a.UserRepository.Create(txCtx, newUser)
		return err
	})
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	resp := auth.RegisterResponse{
		User: summarize(created),
	}
	if manager != nil {
		m := summarize(*manager)
		resp.Manager = &m
	}
	return resp, nil
}

// Login implements auth.AuthService. A missing user and a wrong password
// produce the same error.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(userData)
}

// Refresh implements auth.AuthService: trades a valid refresh token for a
// fresh token pair.
func (a *AuthServiceImpl) Refresh(ctx context.Context, req auth.RefreshTokenRequest) (auth.TokenResponse, error) {
	userID, err := a.Service.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return a.issueTokens(userData)
}

func (a *AuthServiceImpl) issueTokens(userData user.User) (auth.TokenResponse, error) {
	var resp auth.TokenResponse
	var err error

	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	resp.User = summarize(userData)
	return resp, nil
}

func summarize(u user.User) auth.UserSummary {
	return auth.UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
