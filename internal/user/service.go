package user

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/leave-management/internal"
	userDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/leave-management/internal/core/user"
	"golang.org/x/crypto/bcrypt"
)

// ErrDuplicateUsername is returned by repositories when the username is taken.
var ErrDuplicateUsername = stderrors.New("duplicate username")

type RepositoryAPI interface {
	// Create inserts the user, failing with ErrDuplicateUsername when the
	// username is already registered. The check and insert are atomic.
	Create(ctx context.Context, u *userDatamodel.User) error
	FindByUsername(ctx context.Context, username string) (*userDatamodel.User, bool, error)
}

type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	dummyHash  []byte
	now        func() time.Time
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	// compared against when the username is unknown so both failure paths cost one bcrypt round
	dummy, err := bcrypt.GenerateFromPassword([]byte("leave-management-dummy-password"), bcryptCost)
	if err != nil {
		logger.Warn("failed to prepare dummy password hash", "error", err)
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	role, _ := coreuser.ParseRole(dto.Role)
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, errors.NewInternalError("Failed to register user", err)
	}

	u := &User{
		Username:     dto.Username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, ToDataModel(u)); err != nil {
		if stderrors.Is(err, ErrDuplicateUsername) {
			s.logger.Info("registration rejected, username taken", "username", dto.Username)
			return nil, errors.ErrAlreadyExists
		}
		s.logger.Error("failed to store user", "username", dto.Username, "error", err)
		return nil, errors.NewInternalError("Failed to register user", err)
	}

	s.logger.Info("user registered", "username", u.Username, "role", u.Role)
	return u, nil
}

// Authenticate verifies a username and password pair. Unknown users and wrong
// passwords produce the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, errors.ErrAuthFailure
	}

	model, found, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to load user", "username", username, "error", err)
		return nil, errors.NewInternalError("Failed to authenticate", err)
	}
	if !found {
		if s.dummyHash != nil {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		}
		s.logger.Info("authentication failed", "username", username)
		return nil, errors.ErrAuthFailure
	}

	if err := bcrypt.CompareHashAndPassword([]byte(model.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("authentication failed", "username", username)
		return nil, errors.ErrAuthFailure
	}

	return FromDataModel(model), nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	model, found, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load user", err)
	}
	if !found {
		return nil, errors.ErrUserNotFound
	}
	return FromDataModel(model), nil
}
