package repositories

import (
	"context"

	"github.com/studybridge/crm-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadFilter narrows a student-lead listing. Search is matched as a
// case-insensitive substring against name, email and phone; SearchCategoryIDs
// carries the ids of categories whose names matched the same search string, so
// course/country display names participate in the match without a join.
type LeadFilter struct {
	Search            string
	ReferralPartnerID *primitive.ObjectID
	SearchCategoryIDs []primitive.ObjectID
}

// ReferralPartnerRepository defines the interface for partner data operations
type ReferralPartnerRepository interface {
	Create(ctx context.Context, partner *models.ReferralPartner) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralPartner, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.ReferralPartner, error)
	// FindByEmailOrPhone returns a partner whose email or phone matches,
	// excluding excludeID when non-nil. Email is compared exactly (callers
	// fold to lowercase first), phone is compared exactly.
	FindByEmailOrPhone(ctx context.Context, email, phone string, excludeID *primitive.ObjectID) (*models.ReferralPartner, error)
	Find(ctx context.Context, search string, page, limit int, all bool) ([]*models.ReferralPartner, error)
	Count(ctx context.Context, search string) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Update(ctx context.Context, partner *models.ReferralPartner) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// StudentLeadRepository defines the interface for lead data operations
type StudentLeadRepository interface {
	Create(ctx context.Context, lead *models.StudentLead) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.StudentLead, error)
	FindByEmail(ctx context.Context, email string, excludeID *primitive.ObjectID) (*models.StudentLead, error)
	FindByPartnerID(ctx context.Context, partnerID primitive.ObjectID) ([]*models.StudentLead, error)
	// Find returns leads sorted by creation time descending. Pagination is
	// applied after the sort; all disables it.
	Find(ctx context.Context, filter LeadFilter, page, limit int, all bool) ([]*models.StudentLead, error)
	Count(ctx context.Context, filter LeadFilter) (int64, error)
	Update(ctx context.Context, lead *models.StudentLead) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CategoryRepository defines the interface for category taxonomy operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Category, error)
	// FindByNameAndType matches name case-insensitively (anchored), type
	// exactly, excluding excludeID when non-nil.
	FindByNameAndType(ctx context.Context, name, categoryType string, excludeID *primitive.ObjectID) (*models.Category, error)
	// FindIDsByName returns the ids of categories whose name contains search,
	// case-insensitively.
	FindIDsByName(ctx context.Context, search string) ([]primitive.ObjectID, error)
	// FindActive returns active categories of the given type (all types when
	// empty), sorted by name ascending.
	FindActive(ctx context.Context, categoryType string) ([]*models.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, name, categoryType string) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}
