package memory

import (
	"context"
	"sync"
	"time"

	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repositories.AdminUserRepository = (*AdminUserRepository)(nil)

// AdminUserRepository is an in-memory AdminUserRepository
type AdminUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.AdminUser
}

// NewAdminUserRepository creates an empty in-memory admin user repository
func NewAdminUserRepository() *AdminUserRepository {
	return &AdminUserRepository{users: make(map[primitive.ObjectID]*models.AdminUser)}
}

// Create inserts an admin user, enforcing the unique email index
func (r *AdminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return duplicateKeyError("email_1")
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

// FindByEmail finds an admin user by email
func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// FindByID finds an admin user by ID
func (r *AdminUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *u
	return &clone, nil
}
