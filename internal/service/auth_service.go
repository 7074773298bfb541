package service

import (
	"log"
	"os"
	"time"

	"campusclubs/internal/db"
	"campusclubs/internal/entities"
	httperrors "campusclubs/internal/errors"
	"campusclubs/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

type AuthService struct {
	Repo   *repository.UserRepository
	Notify *NotifyService
}

func NewAuthService(repo *repository.UserRepository, notify *NotifyService) *AuthService {
	return &AuthService{Repo: repo, Notify: notify}
}

// Register creates a user and returns a signed access token. Duplicate
// emails are rejected with a 400.
func (s *AuthService) Register(name, email, password string, phone *string) (*entities.AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperrors.ErrBadRequest("email already registered")
	}

	user, err := s.Repo.CreateUser(name, email, password, phone)
	if err != nil {
		return nil, err
	}

	go func(u db.User) {
		if err := s.Notify.SendWelcomeEmail(u); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", u.Email, err)
		}
	}(*user)

	token, err := signToken(user.UID)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{AccessToken: token, UID: user.UID}, nil
}

// Login verifies credentials and returns a signed access token.
func (s *AuthService) Login(email, password string) (*entities.AuthResponse, error) {
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, httperrors.ErrUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httperrors.ErrUnauthorized("invalid credentials")
	}

	token, err := signToken(user.UID)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{AccessToken: token, UID: user.UID}, nil
}

// Me returns the profile for a token subject.
func (s *AuthService) Me(uid string) (*entities.MeResponse, error) {
	user, err := s.Repo.GetByUID(uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, httperrors.ErrNotFound("user not found")
	}
	return &entities.MeResponse{UID: user.UID, Name: user.Name, Email: user.Email}, nil
}

func signToken(uid string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", httperrors.NewHTTPError(500, "JWT_SECRET not set")
	}
	claims := jwt.MapClaims{
		"sub": uid,
		"exp": time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
