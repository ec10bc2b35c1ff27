package services

import (
	"context"
	"strings"

	"github.com/studybridge/crm-backend/internal/config"
	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/repositories"
	"github.com/studybridge/crm-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles admin authentication
type AuthService struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// Login checks the credentials and returns a signed JWT with the user.
// Lookup failures and password mismatches are reported identically so the
// response does not reveal which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.AdminUser, error) {
	user, err := s.adminRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role, s.cfg)
	if err != nil {
		return "", nil, err
	}

	user.Password = ""
	return token, user, nil
}

// GetUser retrieves an admin user by ID, with the password hash stripped
func (s *AuthService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	user, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// CreateAdmin hashes the password and stores a new admin user. Used by the
// bootstrap script; there is no registration endpoint.
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (*models.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, &ValidationError{Messages: []string{"Name, email and password are required"}}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.AdminUser{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	}
	if err := s.adminRepo.Create(ctx, user); err != nil {
		return nil, mapDuplicateKey(err, "user")
	}
	user.Password = ""
	return user, nil
}
