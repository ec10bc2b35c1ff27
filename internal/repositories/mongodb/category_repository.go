package mongodb

import (
	"context"
	"regexp"
	"time"

	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure CategoryRepository implements the interface
var _ repositories.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository handles MongoDB operations for Category
type CategoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection("studentcategories"),
	}
}

// EnsureIndexes creates the unique (name, type) index and the listing index.
// The index is case-sensitive; the case-insensitive rule is enforced by the
// application-level regex check on the write paths.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("name_1_type_1"),
		},
		{
			Keys: bson.D{{Key: "type", Value: 1}, {Key: "isActive", Value: 1}},
		},
	})
	return err
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.ID = primitive.NewObjectID()
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, category)
	return err
}

// FindByID finds a category by ID
func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &category, nil
}

// FindByIDs finds all categories whose ID is in ids
func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Category, error) {
	if len(ids) == 0 {
		return []*models.Category{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []*models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return categories, nil
}

// FindByNameAndType finds a category by anchored case-insensitive name match
// and exact type, excluding excludeID when non-nil
func (r *CategoryRepository) FindByNameAndType(ctx context.Context, name, categoryType string, excludeID *primitive.ObjectID) (*models.Category, error) {
	filter := bson.M{
		"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"},
		"type": categoryType,
	}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}

	var category models.Category
	err := r.collection.FindOne(ctx, filter).Decode(&category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindIDsByName returns the ids of categories whose name contains search
func (r *CategoryRepository) FindIDsByName(ctx context.Context, search string) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"name": primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"},
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

// FindActive retrieves active categories of the given type (all types when
// empty), sorted by name ascending
func (r *CategoryRepository) FindActive(ctx context.Context, categoryType string) ([]*models.Category, error) {
	filter := bson.M{"isActive": true}
	if categoryType != "" {
		filter["type"] = categoryType
	}
	opts := options.Find().SetSort(bson.M{"name": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []*models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return categories, nil
}

// Update renames a category in place and returns the updated document.
// Existing lead references keep pointing at the same id, so the rename is
// immediately visible everywhere the id is resolved.
func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, name, categoryType string) (*models.Category, error) {
	set := bson.M{"name": name, "updatedAt": time.Now()}
	if categoryType != "" {
		set["type"] = categoryType
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var category models.Category
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete deletes a category by ID. Leads referencing it keep the stale id;
// read paths resolve that to an empty display name.
func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
