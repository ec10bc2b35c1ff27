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

// Compile-time check to ensure PartnerRepository implements the interface
var _ repositories.ReferralPartnerRepository = (*PartnerRepository)(nil)

// PartnerRepository handles MongoDB operations for ReferralPartner
type PartnerRepository struct {
	collection *mongo.Collection
}

// NewPartnerRepository creates a new PartnerRepository
func NewPartnerRepository(db *mongo.Database) *PartnerRepository {
	return &PartnerRepository{
		collection: db.Collection("referralpartners"),
	}
}

// EnsureIndexes creates the unique email and phone indexes. The application
// layer pre-checks duplicates for a friendly error; these indexes are the
// actual uniqueness guarantee under concurrent writers.
func (r *PartnerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_1"),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("phone_1"),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	return err
}

func partnerSearchQuery(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	return bson.M{
		"$or": bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
			bson.M{"phone": re},
			bson.M{"city": re},
		},
	}
}

// Create inserts a new partner
func (r *PartnerRepository) Create(ctx context.Context, partner *models.ReferralPartner) error {
	partner.ID = primitive.NewObjectID()
	partner.CreatedAt = time.Now()
	partner.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, partner)
	return err
}

// FindByID finds a partner by ID
func (r *PartnerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralPartner, error) {
	var partner models.ReferralPartner
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&partner)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &partner, nil
}

// FindByIDs finds all partners whose ID is in ids
func (r *PartnerRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.ReferralPartner, error) {
	if len(ids) == 0 {
		return []*models.ReferralPartner{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var partners []*models.ReferralPartner
	if err := cursor.All(ctx, &partners); err != nil {
		return nil, err
	}
	if partners == nil {
		partners = []*models.ReferralPartner{}
	}
	return partners, nil
}

// FindByEmailOrPhone finds a partner matching either value, excluding excludeID
func (r *PartnerRepository) FindByEmailOrPhone(ctx context.Context, email, phone string, excludeID *primitive.ObjectID) (*models.ReferralPartner, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"email": email},
			bson.M{"phone": phone},
		},
	}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}

	var partner models.ReferralPartner
	err := r.collection.FindOne(ctx, filter).Decode(&partner)
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// Find retrieves partners matching search, newest first, optionally paged
func (r *PartnerRepository) Find(ctx context.Context, search string, page, limit int, all bool) ([]*models.ReferralPartner, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if !all {
		opts = opts.SetSkip(int64((page - 1) * limit)).SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, partnerSearchQuery(search), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var partners []*models.ReferralPartner
	if err := cursor.All(ctx, &partners); err != nil {
		return nil, err
	}
	if partners == nil {
		partners = []*models.ReferralPartner{}
	}
	return partners, nil
}

// Count counts partners matching search
func (r *PartnerRepository) Count(ctx context.Context, search string) (int64, error) {
	return r.collection.CountDocuments(ctx, partnerSearchQuery(search))
}

// CountByStatus counts partners with the given status
func (r *PartnerRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// Update replaces an existing partner document
func (r *PartnerRepository) Update(ctx context.Context, partner *models.ReferralPartner) error {
	partner.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": partner.ID}, partner)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateStatus sets only the status field
func (r *PartnerRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes a partner by ID. Leads referencing the partner are left
// untouched; their reference becomes dangling.
func (r *PartnerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
