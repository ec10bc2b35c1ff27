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

var _ repositories.StudentLeadRepository = (*LeadRepository)(nil)

type leadEntry struct {
	seq  int64
	lead models.StudentLead
}

func (e *leadEntry) seqNo() int64 { return e.seq }

// LeadRepository is an in-memory StudentLeadRepository
type LeadRepository struct {
	mu      sync.RWMutex
	seq     int64
	entries map[primitive.ObjectID]*leadEntry
}

// NewLeadRepository creates an empty in-memory lead repository
func NewLeadRepository() *LeadRepository {
	return &LeadRepository{entries: make(map[primitive.ObjectID]*leadEntry)}
}

func idIn(id primitive.ObjectID, ids []primitive.ObjectID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}
	return false
}

func (r *LeadRepository) matching(filter repositories.LeadFilter) []*leadEntry {
	var out []*leadEntry
	for _, e := range r.entries {
		if filter.ReferralPartnerID != nil && e.lead.ReferralPartner != *filter.ReferralPartnerID {
			continue
		}
		if filter.Search != "" {
			hit := containsFold(e.lead.Name, filter.Search) ||
				containsFold(e.lead.Email, filter.Search) ||
				containsFold(e.lead.Phone, filter.Search) ||
				idIn(e.lead.CourseApplied, filter.SearchCategoryIDs) ||
				idIn(e.lead.CountryPreference, filter.SearchCategoryIDs)
			if !hit {
				continue
			}
		}
		out = append(out, e)
	}
	sortNewestFirst(out)
	return out
}

// Create inserts a lead, enforcing the unique email index
func (r *LeadRepository) Create(ctx context.Context, lead *models.StudentLead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.lead.Email == lead.Email {
			return duplicateKeyError("email_1")
		}
	}

	lead.ID = primitive.NewObjectID()
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = time.Now()
	r.seq++
	r.entries[lead.ID] = &leadEntry{seq: r.seq, lead: *lead}
	return nil
}

// FindByID finds a lead by ID
func (r *LeadRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StudentLead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	lead := e.lead
	return &lead, nil
}

// FindByEmail finds a lead by exact email, excluding excludeID when non-nil
func (r *LeadRepository) FindByEmail(ctx context.Context, email string, excludeID *primitive.ObjectID) (*models.StudentLead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if excludeID != nil && e.lead.ID == *excludeID {
			continue
		}
		if e.lead.Email == email {
			lead := e.lead
			return &lead, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// FindByPartnerID finds all leads referred by one partner, newest first
func (r *LeadRepository) FindByPartnerID(ctx context.Context, partnerID primitive.ObjectID) ([]*models.StudentLead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter := repositories.LeadFilter{ReferralPartnerID: &partnerID}
	entries := r.matching(filter)
	leads := make([]*models.StudentLead, 0, len(entries))
	for _, e := range entries {
		lead := e.lead
		leads = append(leads, &lead)
	}
	return leads, nil
}

// Find retrieves leads matching filter, newest first, optionally paged
func (r *LeadRepository) Find(ctx context.Context, filter repositories.LeadFilter, page, limit int, all bool) ([]*models.StudentLead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := paginate(r.matching(filter), page, limit, all)
	leads := make([]*models.StudentLead, 0, len(entries))
	for _, e := range entries {
		lead := e.lead
		leads = append(leads, &lead)
	}
	return leads, nil
}

// Count counts leads matching filter
func (r *LeadRepository) Count(ctx context.Context, filter repositories.LeadFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(filter))), nil
}

// Update replaces an existing lead, enforcing the unique email index
func (r *LeadRepository) Update(ctx context.Context, lead *models.StudentLead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[lead.ID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, other := range r.entries {
		if other.lead.ID != lead.ID && other.lead.Email == lead.Email {
			return duplicateKeyError("email_1")
		}
	}
	lead.UpdatedAt = time.Now()
	e.lead = *lead
	return nil
}

// Delete deletes a lead by ID
func (r *LeadRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.entries, id)
	return nil
}
