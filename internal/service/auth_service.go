package service

import (
	"errors"
	"fmt"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/auth"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/repository"
)

// AuthService handles registration, login and identity resolution.
type AuthService struct {
	users *repository.UserRepository
	jwt   *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository, jwt *auth.JWTManager) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Register validates the payload, persists a new user with a hashed password
// and returns a bearer token. Duplicate username or email surfaces as
// models.ErrDuplicate before or at the constraint.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.Token, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(&models.User{
		Username:          req.Username,
		Email:             req.Email,
		PasswordHash:      hash,
		FullName:          req.FullName,
		Age:               req.Age,
		Gender:            req.Gender,
		Location:          req.Location,
		MaritalStatus:     req.MaritalStatus,
		FavoriteCountries: req.FavoriteCountries,
	})
	if err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login verifies credentials and returns a bearer token. The identifier may
// be an email address or a username; mismatches always surface as
// models.ErrInvalidCredentials without saying which part was wrong.
func (s *AuthService) Login(req *models.LoginRequest) (*models.Token, error) {
	if req.Username == "" || req.Password == "" {
		return nil, models.ErrInvalidCredentials
	}

	user, err := s.lookupUser(req.Username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, models.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// ResolveUser loads the user identified by validated token claims.
func (s *AuthService) ResolveUser(claims *auth.Claims) (*models.User, error) {
	user, err := s.users.GetUserByID(claims.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	return user, err
}

func (s *AuthService) lookupUser(identifier string) (*models.User, error) {
	if models.ValidEmail(identifier) {
		return s.users.GetUserByEmail(identifier)
	}
	return s.users.GetUserByUsername(identifier)
}

func (s *AuthService) issueToken(user *models.User) (*models.Token, error) {
	accessToken, err := s.jwt.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &models.Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
		User:        user.Response(),
	}, nil
}
