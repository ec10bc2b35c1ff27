package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repositories.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository is an in-memory CategoryRepository
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[primitive.ObjectID]*models.Category
}

// NewCategoryRepository creates an empty in-memory category repository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[primitive.ObjectID]*models.Category)}
}

// Create inserts a category, enforcing the unique (name, type) index
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Name == category.Name && c.Type == category.Type {
			return duplicateKeyError("name_1_type_1")
		}
	}

	category.ID = primitive.NewObjectID()
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

// FindByID finds a category by ID
func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *c
	return &clone, nil
}

// FindByIDs finds all categories whose ID is in ids
func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := []*models.Category{}
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			clone := *c
			categories = append(categories, &clone)
		}
	}
	return categories, nil
}

// FindByNameAndType finds a category by case-insensitive name and exact type,
// excluding excludeID when non-nil
func (r *CategoryRepository) FindByNameAndType(ctx context.Context, name, categoryType string, excludeID *primitive.ObjectID) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if strings.EqualFold(c.Name, name) && c.Type == categoryType {
			clone := *c
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// FindIDsByName returns the ids of categories whose name contains search
func (r *CategoryRepository) FindIDsByName(ctx context.Context, search string) ([]primitive.ObjectID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := []primitive.ObjectID{}
	for _, c := range r.categories {
		if containsFold(c.Name, search) {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

// FindActive retrieves active categories of the given type, sorted by name
func (r *CategoryRepository) FindActive(ctx context.Context, categoryType string) ([]*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := []*models.Category{}
	for _, c := range r.categories {
		if !c.IsActive {
			continue
		}
		if categoryType != "" && c.Type != categoryType {
			continue
		}
		clone := *c
		categories = append(categories, &clone)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// Update renames a category in place and returns the updated document
func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, name, categoryType string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	c.Name = name
	if categoryType != "" {
		c.Type = categoryType
	}
	c.UpdatedAt = time.Now()
	clone := *c
	return &clone, nil
}

// Delete deletes a category by ID
func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.categories, id)
	return nil
}
