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

// Compile-time check to ensure LeadRepository implements the interface
var _ repositories.StudentLeadRepository = (*LeadRepository)(nil)

// LeadRepository handles MongoDB operations for StudentLead
type LeadRepository struct {
	collection *mongo.Collection
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{
		collection: db.Collection("studentleads"),
	}
}

// EnsureIndexes creates the unique email index plus the listing indexes
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_1"),
		},
		{
			Keys: bson.D{{Key: "referralPartner", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "commissionStatus", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	return err
}

func leadQuery(filter repositories.LeadFilter) bson.M {
	query := bson.M{}
	if filter.ReferralPartnerID != nil {
		query["referralPartner"] = *filter.ReferralPartnerID
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		or := bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
			bson.M{"phone": re},
		}
		if len(filter.SearchCategoryIDs) > 0 {
			in := bson.M{"$in": filter.SearchCategoryIDs}
			or = append(or, bson.M{"courseApplied": in}, bson.M{"countryPreference": in})
		}
		query["$or"] = or
	}
	return query
}

// Create inserts a new lead
func (r *LeadRepository) Create(ctx context.Context, lead *models.StudentLead) error {
	lead.ID = primitive.NewObjectID()
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, lead)
	return err
}

// FindByID finds a lead by ID
func (r *LeadRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StudentLead, error) {
	var lead models.StudentLead
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&lead)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &lead, nil
}

// FindByEmail finds a lead by exact email, excluding excludeID when non-nil
func (r *LeadRepository) FindByEmail(ctx context.Context, email string, excludeID *primitive.ObjectID) (*models.StudentLead, error) {
	filter := bson.M{"email": email}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}

	var lead models.StudentLead
	err := r.collection.FindOne(ctx, filter).Decode(&lead)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// FindByPartnerID finds all leads referred by one partner, newest first
func (r *LeadRepository) FindByPartnerID(ctx context.Context, partnerID primitive.ObjectID) ([]*models.StudentLead, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"referralPartner": partnerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []*models.StudentLead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []*models.StudentLead{}
	}
	return leads, nil
}

// Find retrieves leads matching filter, newest first, optionally paged. The
// sort is applied before the skip/limit slice so every page comes out of the
// same total ordering.
func (r *LeadRepository) Find(ctx context.Context, filter repositories.LeadFilter, page, limit int, all bool) ([]*models.StudentLead, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if !all {
		opts = opts.SetSkip(int64((page - 1) * limit)).SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, leadQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []*models.StudentLead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []*models.StudentLead{}
	}
	return leads, nil
}

// Count counts leads matching filter
func (r *LeadRepository) Count(ctx context.Context, filter repositories.LeadFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, leadQuery(filter))
}

// Update replaces an existing lead document
func (r *LeadRepository) Update(ctx context.Context, lead *models.StudentLead) error {
	lead.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": lead.ID}, lead)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes a lead by ID
func (r *LeadRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
