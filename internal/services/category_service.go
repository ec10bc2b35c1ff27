package services

import (
	"context"
	"strings"

	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CategoryService maintains the course/country taxonomy. The (name, type)
// pair is unique case-insensitively; the check lives here, on top of the
// store's case-sensitive unique index.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories retrieves active categories of the given type (all types
// when empty), sorted by name ascending
func (s *CategoryService) ListCategories(ctx context.Context, categoryType string) ([]*models.Category, error) {
	return s.categoryRepo.FindActive(ctx, categoryType)
}

// CreateCategory inserts a new active category, rejecting a case-insensitive
// (name, type) collision. Supports the inline "add new course/country" flow
// on the lead form.
func (s *CategoryService) CreateCategory(ctx context.Context, name, categoryType string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || categoryType == "" {
		return nil, &ValidationError{Messages: []string{"Name and type are required"}}
	}
	if !models.ValidCategoryType(categoryType) {
		return nil, &ValidationError{Messages: []string{"Type must be 'course' or 'country'"}}
	}

	_, err := s.categoryRepo.FindByNameAndType(ctx, name, categoryType, nil)
	if err == nil {
		return nil, &CategoryExistsError{Type: categoryType}
	}
	if !IsNotFound(err) {
		return nil, err
	}

	category := &models.Category{
		Name:     name,
		Type:     categoryType,
		IsActive: true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &CategoryExistsError{Type: categoryType}
		}
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category in place, rejecting a collision with a
// different record. Lead references are not rewritten; they keep pointing at
// the same id, so the new name shows up on the next read.
func (s *CategoryService) UpdateCategory(ctx context.Context, id primitive.ObjectID, name, categoryType string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Messages: []string{"ID and name are required"}}
	}
	if categoryType != "" && !models.ValidCategoryType(categoryType) {
		return nil, &ValidationError{Messages: []string{"Type must be 'course' or 'country'"}}
	}

	checkType := categoryType
	if checkType == "" {
		existing, err := s.categoryRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		checkType = existing.Type
	}

	_, err := s.categoryRepo.FindByNameAndType(ctx, name, checkType, &id)
	if err == nil {
		return nil, &CategoryExistsError{Type: checkType}
	}
	if !IsNotFound(err) {
		return nil, err
	}

	category, err := s.categoryRepo.Update(ctx, id, name, categoryType)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &CategoryExistsError{Type: checkType}
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category unconditionally. Leads referencing it are
// left with a dangling id, which read paths resolve to an empty name.
func (s *CategoryService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	return s.categoryRepo.Delete(ctx, id)
}
