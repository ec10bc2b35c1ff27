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

var _ repositories.ReferralPartnerRepository = (*PartnerRepository)(nil)

type partnerEntry struct {
	seq     int64
	partner models.ReferralPartner
}

func (e *partnerEntry) seqNo() int64 { return e.seq }

// PartnerRepository is an in-memory ReferralPartnerRepository
type PartnerRepository struct {
	mu      sync.RWMutex
	seq     int64
	entries map[primitive.ObjectID]*partnerEntry
}

// NewPartnerRepository creates an empty in-memory partner repository
func NewPartnerRepository() *PartnerRepository {
	return &PartnerRepository{entries: make(map[primitive.ObjectID]*partnerEntry)}
}

func (r *PartnerRepository) matching(search string) []*partnerEntry {
	var out []*partnerEntry
	for _, e := range r.entries {
		if search == "" ||
			containsFold(e.partner.Name, search) ||
			containsFold(e.partner.Email, search) ||
			containsFold(e.partner.Phone, search) ||
			containsFold(e.partner.City, search) {
			out = append(out, e)
		}
	}
	sortNewestFirst(out)
	return out
}

// Create inserts a partner, enforcing the unique email and phone indexes
func (r *PartnerRepository) Create(ctx context.Context, partner *models.ReferralPartner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.partner.Email == partner.Email {
			return duplicateKeyError("email_1")
		}
		if e.partner.Phone == partner.Phone {
			return duplicateKeyError("phone_1")
		}
	}

	partner.ID = primitive.NewObjectID()
	partner.CreatedAt = time.Now()
	partner.UpdatedAt = time.Now()
	r.seq++
	r.entries[partner.ID] = &partnerEntry{seq: r.seq, partner: *partner}
	return nil
}

// FindByID finds a partner by ID
func (r *PartnerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralPartner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	partner := e.partner
	return &partner, nil
}

// FindByIDs finds all partners whose ID is in ids
func (r *PartnerRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.ReferralPartner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	partners := []*models.ReferralPartner{}
	for _, id := range ids {
		if e, ok := r.entries[id]; ok {
			partner := e.partner
			partners = append(partners, &partner)
		}
	}
	return partners, nil
}

// FindByEmailOrPhone finds a partner matching either value, excluding excludeID
func (r *PartnerRepository) FindByEmailOrPhone(ctx context.Context, email, phone string, excludeID *primitive.ObjectID) (*models.ReferralPartner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if excludeID != nil && e.partner.ID == *excludeID {
			continue
		}
		if e.partner.Email == email || e.partner.Phone == phone {
			partner := e.partner
			return &partner, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// Find retrieves partners matching search, newest first, optionally paged
func (r *PartnerRepository) Find(ctx context.Context, search string, page, limit int, all bool) ([]*models.ReferralPartner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := paginate(r.matching(search), page, limit, all)
	partners := make([]*models.ReferralPartner, 0, len(entries))
	for _, e := range entries {
		partner := e.partner
		partners = append(partners, &partner)
	}
	return partners, nil
}

// Count counts partners matching search
func (r *PartnerRepository) Count(ctx context.Context, search string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(search))), nil
}

// CountByStatus counts partners with the given status
func (r *PartnerRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, e := range r.entries {
		if e.partner.Status == status {
			n++
		}
	}
	return n, nil
}

// Update replaces an existing partner, enforcing the unique indexes
func (r *PartnerRepository) Update(ctx context.Context, partner *models.ReferralPartner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[partner.ID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, other := range r.entries {
		if other.partner.ID == partner.ID {
			continue
		}
		if other.partner.Email == partner.Email {
			return duplicateKeyError("email_1")
		}
		if other.partner.Phone == partner.Phone {
			return duplicateKeyError("phone_1")
		}
	}
	partner.UpdatedAt = time.Now()
	e.partner = *partner
	return nil
}

// UpdateStatus sets only the status field
func (r *PartnerRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	e.partner.Status = status
	return nil
}

// Delete deletes a partner by ID
func (r *PartnerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.entries, id)
	return nil
}
