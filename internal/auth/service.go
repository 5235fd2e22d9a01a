package auth

import (
	"context"
	stderrors "errors"
	"log/slog"

	errors "github.com/frahmantamala/leave-management/internal"
	coreuser "github.com/frahmantamala/leave-management/internal/core/user"
	"github.com/frahmantamala/leave-management/internal/user"
)

// CredentialStore is the part of the user service the session layer relies on.
type CredentialStore interface {
	Register(ctx context.Context, dto user.RegisterDTO) (*user.User, error)
	Authenticate(ctx context.Context, username, password string) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

type ServiceAPI interface {
	Register(ctx context.Context, dto user.RegisterDTO) (*user.User, error)
	Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ResolveActor(ctx context.Context, claims *Claims) (coreuser.Actor, error)
}

// Service is the main auth service with dependencies
type Service struct {
	credentials    CredentialStore
	tokenGenerator TokenGenerator
	accessTTL      int64
	logger         *slog.Logger
}

func NewService(credentials CredentialStore, tokenGen *JWTTokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		credentials:    credentials,
		tokenGenerator: tokenGen,
		accessTTL:      int64(tokenGen.AccessTokenTTL.Seconds()),
		logger:         logger,
	}
}

func (s *Service) Register(ctx context.Context, dto user.RegisterDTO) (*user.User, error) {
	return s.credentials.Register(ctx, dto)
}

// Login authenticates the credentials and opens a session.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	u, err := s.credentials.Authenticate(ctx, dto.Username, dto.Password)
	if err != nil {
		return nil, err
	}

	tokens, err := s.issue(u)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "username", u.Username, "role", u.Role)
	return &LoginResponse{AuthTokens: tokens, User: u.ToResponse()}, nil
}

// RefreshTokens validates refresh token and returns new tokens
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return AuthTokens{}, err
	}

	u, err := s.load(ctx, claims.Username)
	if err != nil {
		return AuthTokens{}, err
	}

	return s.issue(u)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString, TokenTypeAccess)
}

// ResolveActor reloads the account named by the token. The stored role wins
// over the one carried in the claims.
func (s *Service) ResolveActor(ctx context.Context, claims *Claims) (coreuser.Actor, error) {
	u, err := s.load(ctx, claims.Username)
	if err != nil {
		return coreuser.Actor{}, err
	}
	return u.Actor(), nil
}

func (s *Service) load(ctx context.Context, username string) (*user.User, error) {
	u, err := s.credentials.GetByUsername(ctx, username)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			s.logger.Warn("token names an unknown user", "username", username)
			return nil, errors.ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) issue(u *user.User) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(u.Username, string(u.Role))
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("Failed to issue token", err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(u.Username, string(u.Role))
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("Failed to issue token", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.accessTTL,
	}, nil
}
